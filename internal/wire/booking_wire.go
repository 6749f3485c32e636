package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Guardian side
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleGuardian)))

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings", bookingHandler.ListGuardianBookings)
		r.Get("/api/bookings/{id}/report", reportHandler.GetBookingReport)
	})

	// Either party of the booking
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// Teacher transitions
	r.Route("/api/teacher/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleTeacher)))

		r.Get("/", bookingHandler.ListTeacherBookings)
		r.Put("/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Put("/{id}/done", bookingHandler.CompleteBooking)
	})
}
