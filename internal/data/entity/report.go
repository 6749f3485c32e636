package entity

import (
	"time"

	"github.com/google/uuid"
)

// Report is the teacher's lesson write-up for a done booking.
// bookings.id is unique here: at most one report per booking.
type Report struct {
	Base
	BookingID   uuid.UUID  `db:"booking_id"`
	TeacherID   uuid.UUID  `db:"teacher_id"`
	Content     string     `db:"content"`
	Summary     *string    `db:"summary"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
}
