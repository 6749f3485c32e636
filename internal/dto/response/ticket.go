package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type TicketResponse struct {
	ID         string `json:"id"`
	TeacherID  string `json:"teacher_id"`
	Name       string `json:"name"`
	Minutes    int    `json:"minutes"`
	BundleQty  int    `json:"bundle_qty"`
	PriceCents int64  `json:"price_cents"`
	ValidDays  int    `json:"valid_days"`
	IsActive   bool   `json:"is_active"`
}

type TicketBalanceResponse struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"student_id"`
	TicketID         string     `json:"ticket_id"`
	GrantedMinutes   int        `json:"granted_minutes"`
	RemainingMinutes int        `json:"remaining_minutes"`
	PurchasedAt      time.Time  `json:"purchased_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:         ticket.ID.String(),
		TeacherID:  ticket.TeacherID.String(),
		Name:       ticket.Name,
		Minutes:    ticket.Minutes,
		BundleQty:  ticket.BundleQty,
		PriceCents: ticket.PriceCents,
		ValidDays:  ticket.ValidDays,
		IsActive:   ticket.IsActive,
	}
}

func TicketsToResponse(tickets []*entity.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i, ticket := range tickets {
		out[i] = TicketToResponse(ticket)
	}
	return out
}

func BalanceToResponse(balance *entity.TicketBalance) TicketBalanceResponse {
	return TicketBalanceResponse{
		ID:               balance.ID.String(),
		StudentID:        balance.StudentID.String(),
		TicketID:         balance.TicketID.String(),
		GrantedMinutes:   balance.GrantedMinutes,
		RemainingMinutes: balance.RemainingMinutes,
		PurchasedAt:      balance.PurchasedAt,
		ExpiresAt:        balance.ExpiresAt,
	}
}

func BalancesToResponse(balances []*entity.TicketBalance) []TicketBalanceResponse {
	out := make([]TicketBalanceResponse, len(balances))
	for i, balance := range balances {
		out[i] = BalanceToResponse(balance)
	}
	return out
}
