package entity

import (
	"github.com/google/uuid"
)

// Student belongs to exactly one guardian. Bookings and ticket balances
// reference the student, not the guardian.
type Student struct {
	Base
	GuardianID uuid.UUID `db:"guardian_id"`
	Name       string    `db:"name"`
	Grade      *string   `db:"grade"`
}
