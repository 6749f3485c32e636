package adaptor

import (
	"encoding/json"
	"net/http"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (guardian)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), guardianID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ConfirmBooking handles PUT /api/teacher/bookings/{id}/confirm (teacher)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")

	if err := h.service.ConfirmBooking(r.Context(), teacherID.String(), bookingID); err != nil {
		respondServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "Booking confirmed", nil)
}

// CompleteBooking handles PUT /api/teacher/bookings/{id}/done (teacher)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")

	if err := h.service.CompleteBooking(r.Context(), teacherID.String(), bookingID); err != nil {
		respondServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking completed", nil)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (guardian or teacher)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")

	if err := h.service.CancelBooking(r.Context(), actorID.String(), entity.UserRole(role), bookingID); err != nil {
		respondServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking canceled", nil)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	bookingID := chi.URLParam(r, "id")

	booking, err := h.service.GetBooking(r.Context(), actorID.String(), entity.UserRole(role), bookingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListGuardianBookings handles GET /api/bookings (guardian)
func (h *BookingHandler) ListGuardianBookings(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page, perPage := paginationFromQuery(r)

	bookings, err := h.service.ListGuardianBookings(r.Context(), guardianID.String(), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list guardian bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListTeacherBookings handles GET /api/teacher/bookings (teacher)
func (h *BookingHandler) ListTeacherBookings(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page, perPage := paginationFromQuery(r)

	bookings, err := h.service.ListTeacherBookings(r.Context(), teacherID.String(), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list teacher bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
