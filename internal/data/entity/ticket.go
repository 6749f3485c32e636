package entity

import (
	"github.com/google/uuid"
)

// Ticket is a purchasable catalog product: a bundle of lesson minutes.
// Existing balances are snapshots, so catalog edits never alter what a
// purchase already granted.
type Ticket struct {
	Base
	TeacherID     uuid.UUID `db:"teacher_id"`
	Name          string    `db:"name"`
	Minutes       int       `db:"minutes"`
	BundleQty     int       `db:"bundle_qty"`
	PriceCents    int64     `db:"price_cents"`
	ValidDays     int       `db:"valid_days"`
	IsActive      bool      `db:"is_active"`
	StripePriceID *string   `db:"stripe_price_id"`
}

// GrantedMinutes is the total a purchase of this ticket credits.
func (t *Ticket) GrantedMinutes() int {
	return t.Minutes * t.BundleQty
}
