package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStudent(
	r chi.Router,
	studentHandler *adaptor.StudentHandler,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Guardian family management
	r.Route("/api/students", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleGuardian)))

		r.Post("/", studentHandler.CreateStudent)
		r.Get("/", studentHandler.ListStudents)
		r.Get("/{id}/balances", studentHandler.ListBalances)
		r.Get("/{id}/eligible-balances", ticketHandler.ListEligibleBalances)
	})
}
