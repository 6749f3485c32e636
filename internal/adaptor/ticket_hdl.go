package adaptor

import (
	"encoding/json"
	"net/http"

	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// CreateTicket handles POST /api/teacher/tickets (teacher)
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.CreateTicket(r.Context(), teacherID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "success", ticket)
}

// SetTicketActive handles PUT /api/teacher/tickets/{id}/active (teacher)
func (h *TicketHandler) SetTicketActive(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID := chi.URLParam(r, "id")

	var req request.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetTicketActive(r.Context(), teacherID.String(), ticketID, req.IsActive); err != nil {
		respondServiceError(w, h.log, err, "toggle ticket")
		return
	}

	utils.ResponseSuccess(w, "Ticket updated", nil)
}

// ListCatalog handles GET /api/teacher/tickets (teacher)
func (h *TicketHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tickets, err := h.service.ListCatalog(r.Context(), teacherID.String())
	if err != nil {
		respondServiceError(w, h.log, err, "list catalog")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// ListActiveTickets handles GET /api/teachers/{id}/tickets (protected)
func (h *TicketHandler) ListActiveTickets(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "id")

	tickets, err := h.service.ListActiveTickets(r.Context(), teacherID)
	if err != nil {
		respondServiceError(w, h.log, err, "list active tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// ListEligibleBalances handles GET /api/students/{id}/eligible-balances (guardian)
func (h *TicketHandler) ListEligibleBalances(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	studentID := chi.URLParam(r, "id")

	balances, err := h.service.ListEligibleBalances(r.Context(), guardianID.String(), studentID)
	if err != nil {
		respondServiceError(w, h.log, err, "list eligible balances")
		return
	}

	utils.ResponseSuccess(w, "success", balances)
}
