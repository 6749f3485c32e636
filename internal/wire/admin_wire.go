package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleAdmin)))

		r.Put("/balances/{id}", adminHandler.AdjustBalance)
		r.Put("/users/{id}/suspend", adminHandler.SuspendUser)
		r.Put("/users/{id}/reactivate", adminHandler.ReactivateUser)
		r.Post("/assignments", adminHandler.AssignTeacher)
		r.Get("/users", adminHandler.ListUsers)
		r.Get("/bookings", adminHandler.ListBookings)
		r.Get("/audit-logs", adminHandler.ListAuditLogs)
	})
}
