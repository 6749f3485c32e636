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

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// CreateReport handles POST /api/teacher/reports (teacher)
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	report, err := h.service.CreateReport(r.Context(), teacherID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create report")
		return
	}

	utils.ResponseCreated(w, "success", report)
}

// UpdateReport handles PUT /api/teacher/reports/{id} (teacher)
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reportID := chi.URLParam(r, "id")

	var req request.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.UpdateReport(r.Context(), teacherID.String(), reportID, &req); err != nil {
		respondServiceError(w, h.log, err, "update report")
		return
	}

	utils.ResponseSuccess(w, "Report updated", nil)
}

// PublishReport handles PUT /api/teacher/reports/{id}/publish (teacher)
func (h *ReportHandler) PublishReport(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reportID := chi.URLParam(r, "id")

	if err := h.service.PublishReport(r.Context(), teacherID.String(), reportID); err != nil {
		respondServiceError(w, h.log, err, "publish report")
		return
	}

	utils.ResponseSuccess(w, "Report published", nil)
}

// ListTeacherReports handles GET /api/teacher/reports (teacher)
func (h *ReportHandler) ListTeacherReports(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page, perPage := paginationFromQuery(r)

	reports, err := h.service.ListTeacherReports(r.Context(), teacherID.String(), request.PaginatedRequest{Page: page, PerPage: perPage})
	if err != nil {
		respondServiceError(w, h.log, err, "list teacher reports")
		return
	}

	utils.ResponseSuccess(w, "success", reports)
}

// GetBookingReport handles GET /api/bookings/{id}/report (guardian)
func (h *ReportHandler) GetBookingReport(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")

	report, err := h.service.GetBookingReport(r.Context(), guardianID.String(), bookingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get booking report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
