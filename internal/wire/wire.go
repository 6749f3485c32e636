package wire

import (
	"net/http"

	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/middleware"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the full dependency graph: services, handlers, router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireStudent(r, handler.Student, handler.Ticket, repo, logger)
	wireAvailability(r, handler.Availability, repo, logger)
	wireTicket(r, handler.Ticket, repo, logger)
	wireBooking(r, handler.Booking, handler.Report, repo, logger)
	wireReport(r, handler.Report, repo, logger)
	wireAdmin(r, handler.Admin, repo, logger)
	wireWebhook(r, handler.Webhook)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
