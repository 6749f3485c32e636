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

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// AdjustBalance handles PUT /api/admin/balances/{id}
func (h *AdminHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	balanceID := chi.URLParam(r, "id")

	var req request.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AdjustBalance(r.Context(), adminID.String(), balanceID, &req); err != nil {
		respondServiceError(w, h.log, err, "adjust balance")
		return
	}

	utils.ResponseSuccess(w, "Balance adjusted", nil)
}

// SuspendUser handles PUT /api/admin/users/{id}/suspend
func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	userID := chi.URLParam(r, "id")

	if err := h.service.SuspendUser(r.Context(), adminID.String(), userID); err != nil {
		respondServiceError(w, h.log, err, "suspend user")
		return
	}

	utils.ResponseSuccess(w, "User suspended", nil)
}

// ReactivateUser handles PUT /api/admin/users/{id}/reactivate
func (h *AdminHandler) ReactivateUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	userID := chi.URLParam(r, "id")

	if err := h.service.ReactivateUser(r.Context(), adminID.String(), userID); err != nil {
		respondServiceError(w, h.log, err, "reactivate user")
		return
	}

	utils.ResponseSuccess(w, "User reactivated", nil)
}

// AssignTeacher handles POST /api/admin/assignments
func (h *AdminHandler) AssignTeacher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeacherID  string `json:"teacher_id" validate:"required,uuid4"`
		GuardianID string `json:"guardian_id" validate:"required,uuid4"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AssignTeacher(r.Context(), req.TeacherID, req.GuardianID); err != nil {
		respondServiceError(w, h.log, err, "assign teacher")
		return
	}

	utils.ResponseCreated(w, "Teacher assigned", nil)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	role := r.URL.Query().Get("role")

	users, err := h.service.ListUsers(r.Context(), role, request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// ListBookings handles GET /api/admin/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	status := r.URL.Query().Get("status")

	bookings, err := h.service.ListBookings(r.Context(), status, request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListAuditLogs handles GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationFromQuery(r)
	query := r.URL.Query()

	entries, err := h.service.ListAuditLogs(r.Context(), query.Get("target_table"), query.Get("actor_id"), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list audit logs")
		return
	}

	utils.ResponseSuccess(w, "success", entries)
}
