package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDone      BookingStatus = "done"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking binds a student, a teacher's slot and a ticket balance.
// Minutes are consumed when the teacher marks the lesson done, not at
// creation; a pending booking reserves the slot but not yet the minutes.
type Booking struct {
	Base
	TeacherID       uuid.UUID     `db:"teacher_id"`
	StudentID       uuid.UUID     `db:"student_id"`
	SlotID          uuid.UUID     `db:"slot_id"`
	StartTime       time.Time     `db:"start_time"`
	EndTime         time.Time     `db:"end_time"`
	Status          BookingStatus `db:"status"`
	TicketBalanceID uuid.UUID     `db:"ticket_balance_id"`
	CanceledBy      *uuid.UUID    `db:"canceled_by"`
}

// CanTransition reports whether a status change is allowed.
// done and canceled are terminal.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusDone || to == BookingStatusCanceled
	case BookingStatusConfirmed:
		return to == BookingStatusDone || to == BookingStatusCanceled
	default:
		return false
	}
}

// DurationMinutes returns the booked lesson length in whole minutes.
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}
