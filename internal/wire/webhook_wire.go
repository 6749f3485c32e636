package wire

import (
	"lesson-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// Authenticated by shared secret inside the handler, not a session.
	r.Post("/api/webhooks/payment", webhookHandler.PaymentCompleted)
}
