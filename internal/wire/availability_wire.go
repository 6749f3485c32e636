package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Teacher manages their own calendar
	r.Route("/api/teacher/slots", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleTeacher)))

		r.Post("/", availabilityHandler.CreateSlot)
		r.Get("/", availabilityHandler.ListTeacherSlots)
		r.Delete("/{id}", availabilityHandler.DeleteSlot)
	})

	// Guardian browses availability of assigned teachers
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleGuardian)))

		r.Get("/api/slots", availabilityHandler.ListBookableSlots)
	})
}
