package request

import "time"

// PaymentWebhookRequest is the payment processor's checkout-completed
// event. The processor already validated the payment; this only grants
// the purchased minutes.
type PaymentWebhookRequest struct {
	EventType   string    `json:"event_type" validate:"required,oneof=checkout.completed"`
	TicketID    string    `json:"ticket_id" validate:"required,uuid4"`
	StudentID   string    `json:"student_id" validate:"required,uuid4"`
	PurchasedAt time.Time `json:"purchased_at" validate:"required"`
	PaymentRef  string    `json:"payment_ref" validate:"required"`
}
