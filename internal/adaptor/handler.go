package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Student      *StudentHandler
	Availability *AvailabilityHandler
	Ticket       *TicketHandler
	Booking      *BookingHandler
	Report       *ReportHandler
	Admin        *AdminHandler
	Webhook      *WebhookHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Student:      NewStudentHandler(service.Student, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Ticket:       NewTicketHandler(service.Ticket, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Report:       NewReportHandler(service.Report, log),
		Admin:        NewAdminHandler(service.Admin, log),
		Webhook:      NewWebhookHandler(service.Ticket, config, log),
	}
}

// respondServiceError maps domain errors to HTTP status codes. The four
// booking failure modes each get their own status so clients can tell a
// lost race (409) from an empty wallet (422) from someone else's
// resource (403).
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrSlotConflict), errors.Is(err, entity.ErrInvalidTransition):
		log.Info(operation+" rejected", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrInsufficientBalance), errors.Is(err, entity.ErrBalanceExpired):
		log.Info(operation+" rejected", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, entity.ErrOwnershipMismatch):
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, entity.ErrNotFound), strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "already"),
		strings.Contains(err.Error(), "nothing to adjust"),
		strings.Contains(err.Error(), "suspended"):
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Something went wrong, please try again later")
	}
}

func paginationFromQuery(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	return utils.ParseInt(query.Get("page"), 1), utils.ParseInt(query.Get("per_page"), 10)
}
