package entity

import (
	"time"

	"github.com/google/uuid"
)

// TicketBalance is one purchase's remaining lesson minutes for a student.
// Invariant: 0 <= RemainingMinutes <= GrantedMinutes. A balance past
// ExpiresAt is never eligible for new bookings regardless of remainder.
type TicketBalance struct {
	Base
	StudentID        uuid.UUID  `db:"student_id"`
	TicketID         uuid.UUID  `db:"ticket_id"`
	GrantedMinutes   int        `db:"granted_minutes"`
	RemainingMinutes int        `db:"remaining_minutes"`
	PurchasedAt      time.Time  `db:"purchased_at"`
	ExpiresAt        *time.Time `db:"expires_at"`
}

// Expired reports whether the balance's validity window has passed.
func (b *TicketBalance) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
}

// Eligible reports whether the balance can back a new booking.
func (b *TicketBalance) Eligible(now time.Time) bool {
	return b.RemainingMinutes > 0 && !b.Expired(now)
}
