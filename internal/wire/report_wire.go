package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/teacher/reports", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))
		r.Use(middleware.RequireRole(string(entity.RoleTeacher)))

		r.Post("/", reportHandler.CreateReport)
		r.Get("/", reportHandler.ListTeacherReports)
		r.Put("/{id}", reportHandler.UpdateReport)
		r.Put("/{id}/publish", reportHandler.PublishReport)
	})
}
