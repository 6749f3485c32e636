package request

import "time"

// AdjustBalanceRequest is the admin-only balance override. Nil fields
// keep the current value.
type AdjustBalanceRequest struct {
	RemainingMinutes *int       `json:"remaining_minutes,omitempty" validate:"omitempty,min=0"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}
