package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Teacher manages their catalog
	r.Route("/api/teacher/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleTeacher)))

		r.Post("/", ticketHandler.CreateTicket)
		r.Get("/", ticketHandler.ListCatalog)
		r.Put("/{id}/active", ticketHandler.SetTicketActive)
	})

	// Any signed-in user can browse a teacher's active bundles
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		r.Get("/api/teachers/{id}/tickets", ticketHandler.ListActiveTickets)
	})
}
