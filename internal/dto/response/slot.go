package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type SlotResponse struct {
	ID         string    `json:"id"`
	TeacherID  string    `json:"teacher_id"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	IsBookable bool      `json:"is_bookable"`
}

func SlotToResponse(slot *entity.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:         slot.ID.String(),
		TeacherID:  slot.TeacherID.String(),
		SlotStart:  slot.SlotStart,
		SlotEnd:    slot.SlotEnd,
		IsBookable: slot.IsBookable,
	}
}

func SlotsToResponse(slots []*entity.AvailabilitySlot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = SlotToResponse(slot)
	}
	return out
}
