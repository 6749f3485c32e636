package wire

import (
	"lesson-booking/internal/adaptor"
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo, log))

		r.Post("/api/logout", authHandler.Logout)
	})
}
