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

type StudentHandler struct {
	service usecase.StudentService
	log     *zap.Logger
}

func NewStudentHandler(service usecase.StudentService, log *zap.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		log:     log.With(zap.String("handler", "student")),
	}
}

// CreateStudent handles POST /api/students (guardian)
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	student, err := h.service.CreateStudent(r.Context(), guardianID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create student")
		return
	}

	utils.ResponseCreated(w, "success", student)
}

// ListStudents handles GET /api/students (guardian)
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	students, err := h.service.ListStudents(r.Context(), guardianID.String())
	if err != nil {
		respondServiceError(w, h.log, err, "list students")
		return
	}

	utils.ResponseSuccess(w, "success", students)
}

// ListBalances handles GET /api/students/{id}/balances (guardian)
func (h *StudentHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	guardianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	studentID := chi.URLParam(r, "id")

	balances, err := h.service.ListBalances(r.Context(), guardianID.String(), studentID)
	if err != nil {
		respondServiceError(w, h.log, err, "list balances")
		return
	}

	utils.ResponseSuccess(w, "success", balances)
}
