package request

import "time"

type CreateSlotRequest struct {
	SlotStart time.Time `json:"slot_start" validate:"required"`
	SlotEnd   time.Time `json:"slot_end" validate:"required"`
}

type ListSlotsRequest struct {
	TeacherID string    `json:"teacher_id,omitempty" validate:"omitempty,uuid4"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
}
