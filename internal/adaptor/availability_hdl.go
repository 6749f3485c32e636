package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// rangeFromQuery defaults to the next four weeks when from/to are absent.
func rangeFromQuery(r *http.Request) (from, to time.Time) {
	now := time.Now()
	query := r.URL.Query()
	from = utils.ParseDate(query.Get("from"), now)
	to = utils.ParseDate(query.Get("to"), now.AddDate(0, 0, 28))
	return from, to
}

// CreateSlot handles POST /api/teacher/slots (teacher)
func (h *AvailabilityHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), teacherID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// DeleteSlot handles DELETE /api/teacher/slots/{id} (teacher)
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID := chi.URLParam(r, "id")

	if err := h.service.DeleteSlot(r.Context(), teacherID.String(), slotID); err != nil {
		respondServiceError(w, h.log, err, "delete slot")
		return
	}

	utils.ResponseSuccess(w, "Slot deleted", nil)
}

// ListTeacherSlots handles GET /api/teacher/slots (teacher)
func (h *AvailabilityHandler) ListTeacherSlots(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	from, to := rangeFromQuery(r)

	slots, err := h.service.ListTeacherSlots(r.Context(), teacherID.String(), from, to)
	if err != nil {
		respondServiceError(w, h.log, err, "list teacher slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// ListBookableSlots handles GET /api/slots (guardian)
func (h *AvailabilityHandler) ListBookableSlots(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	from, to := rangeFromQuery(r)
	teacherID := r.URL.Query().Get("teacher_id")

	slots, err := h.service.ListBookableSlots(r.Context(), guardianID.String(), teacherID, from, to)
	if err != nil {
		respondServiceError(w, h.log, err, "list bookable slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
