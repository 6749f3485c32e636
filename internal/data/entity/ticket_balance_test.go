package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketBalance_Eligible(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		remaining int
		expiresAt *time.Time
		eligible  bool
	}{
		{"minutes left, not expired", 60, &future, true},
		{"minutes left, no expiry", 60, nil, true},
		{"spent", 0, &future, false},
		{"expired", 60, &past, false},
		{"spent and expired", 0, &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := &TicketBalance{
				RemainingMinutes: tt.remaining,
				ExpiresAt:        tt.expiresAt,
			}
			assert.Equal(t, tt.eligible, balance.Eligible(now))
		})
	}
}

func TestTicket_GrantedMinutes(t *testing.T) {
	ticket := &Ticket{Minutes: 45, BundleQty: 8}
	assert.Equal(t, 360, ticket.GrantedMinutes())
}
