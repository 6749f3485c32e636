package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a teacher-published bookable time interval.
// Once a pending or confirmed booking references it, IsBookable must be
// false; two bookings must never reference the same slot.
type AvailabilitySlot struct {
	Base
	TeacherID  uuid.UUID `db:"teacher_id"`
	SlotStart  time.Time `db:"slot_start"`
	SlotEnd    time.Time `db:"slot_end"`
	IsBookable bool      `db:"is_bookable"`
}

// DurationMinutes returns the slot length in whole minutes.
func (s *AvailabilitySlot) DurationMinutes() int {
	return int(s.SlotEnd.Sub(s.SlotStart) / time.Minute)
}
