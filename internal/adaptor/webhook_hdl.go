package adaptor

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

type WebhookHandler struct {
	service usecase.TicketService
	config  *utils.Config
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.TicketService, config *utils.Config, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// PaymentCompleted handles POST /api/webhooks/payment. The payment
// provider authenticates with a shared secret header, not a session.
func (h *WebhookHandler) PaymentCompleted(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.config.Webhook.Secret)) != 1 {
		h.log.Warn("Webhook rejected: bad secret", zap.String("ip", r.RemoteAddr))
		utils.ResponseUnauthorized(w, "Invalid webhook secret")
		return
	}

	var req request.PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	balance, err := h.service.GrantPurchase(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "grant purchase")
		return
	}

	utils.ResponseCreated(w, "success", balance)
}
