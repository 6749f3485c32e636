package entity

import (
	"github.com/google/uuid"
)

type TeacherPlan string

const (
	PlanFree TeacherPlan = "free"
	PlanPro  TeacherPlan = "pro"
)

// TeacherProfile holds the marketplace-facing data of a teacher account.
// The account itself lives in users; profiles are never hard-deleted,
// suspension happens through users.is_active.
type TeacherProfile struct {
	Base
	UserID          uuid.UUID   `db:"user_id"`
	Subjects        []string    `db:"subjects"`
	Grades          []string    `db:"grades"`
	Plan            TeacherPlan `db:"plan"`
	StripeAccountID *string     `db:"stripe_account_id"`
}
