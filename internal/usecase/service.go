package usecase

import (
	"lesson-booking/internal/data/repository"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Student      StudentService
	Availability AvailabilityService
	Ticket       TicketService
	Booking      BookingService
	Report       ReportService
	Admin        AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *Service {
	notifier := NewNotifier(config, logger)

	return &Service{
		Auth:         NewAuthService(repo, config, logger),
		Student:      NewStudentService(repo, logger),
		Availability: NewAvailabilityService(repo, logger),
		Ticket:       NewTicketService(repo, logger),
		Booking:      NewBookingService(repo, notifier, logger),
		Report:       NewReportService(repo, notifier, logger),
		Admin:        NewAdminService(repo, logger),
	}
}
