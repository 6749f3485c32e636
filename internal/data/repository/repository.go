package repository

import (
	"lesson-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Teacher       TeacherRepository
	Student       StudentRepository
	Slot          SlotRepository
	Ticket        TicketRepository
	TicketBalance TicketBalanceRepository
	Booking       BookingRepository
	Report        ReportRepository
	AuditLog      AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Teacher:       NewTeacherRepository(db, log),
		Student:       NewStudentRepository(db, log),
		Slot:          NewSlotRepository(db, log),
		Ticket:        NewTicketRepository(db, log),
		TicketBalance: NewTicketBalanceRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		Report:        NewReportRepository(db, log),
		AuditLog:      NewAuditLogRepository(db, log),
	}
}
