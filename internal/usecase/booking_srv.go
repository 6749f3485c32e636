package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/dto/response"
	"lesson-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking validates ownership and eligibility, then reserves the
	// slot and inserts the pending booking atomically. Minutes are not
	// consumed here; they are consumed when the lesson is marked done.
	CreateBooking(ctx context.Context, guardianID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Teacher transitions.
	ConfirmBooking(ctx context.Context, teacherID, bookingID string) error
	CompleteBooking(ctx context.Context, teacherID, bookingID string) error

	// CancelBooking releases the slot and never consumes minutes. Either
	// side of the booking, or an admin, may cancel while it is pending or
	// confirmed.
	CancelBooking(ctx context.Context, actorID string, role entity.UserRole, bookingID string) error

	GetBooking(ctx context.Context, actorID string, role entity.UserRole, bookingID string) (*response.BookingResponse, error)
	ListGuardianBookings(ctx context.Context, guardianID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListTeacherBookings(ctx context.Context, teacherID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, guardianID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}
	teacherUUID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", req.TeacherID, err)
	}
	studentUUID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student ID format %s: %w", req.StudentID, err)
	}
	slotUUID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("invalid slot ID format %s: %w", req.SlotID, err)
	}
	balanceUUID, err := uuid.Parse(req.TicketBalanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid balance ID format %s: %w", req.TicketBalanceID, err)
	}

	student, err := s.repo.Student.FindByID(ctx, studentUUID)
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil {
		return nil, entity.ErrNotFound
	}
	if student.GuardianID != guardianUUID {
		s.denyOwnership(ctx, guardianUUID, "students", studentUUID)
		return nil, entity.ErrOwnershipMismatch
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotUUID)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return nil, entity.ErrNotFound
	}
	if slot.TeacherID != teacherUUID {
		s.denyOwnership(ctx, guardianUUID, "availability_slots", slotUUID)
		return nil, entity.ErrOwnershipMismatch
	}
	if !slot.IsBookable {
		return nil, entity.ErrSlotConflict
	}

	balance, err := s.repo.TicketBalance.FindByID(ctx, balanceUUID)
	if err != nil {
		return nil, fmt.Errorf("find balance: %w", err)
	}
	if balance == nil {
		return nil, entity.ErrNotFound
	}
	if balance.StudentID != studentUUID {
		s.denyOwnership(ctx, guardianUUID, "ticket_balances", balanceUUID)
		return nil, entity.ErrOwnershipMismatch
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, balance.TicketID)
	if err != nil {
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, entity.ErrNotFound
	}
	if ticket.TeacherID != teacherUUID {
		// Minutes bought from one teacher cannot book another.
		return nil, entity.ErrOwnershipMismatch
	}

	now := time.Now()
	if balance.Expired(now) {
		return nil, entity.ErrBalanceExpired
	}

	duration := slot.DurationMinutes()
	if duration > ticket.Minutes || balance.RemainingMinutes < duration {
		return nil, entity.ErrInsufficientBalance
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TeacherID:       teacherUUID,
		StudentID:       studentUUID,
		SlotID:          slotUUID,
		StartTime:       slot.SlotStart,
		EndTime:         slot.SlotEnd,
		Status:          entity.BookingStatusPending,
		TicketBalanceID: balanceUUID,
	}

	if err := s.repo.Booking.CreateReserving(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrSlotConflict) {
			s.log.Info("Slot taken by concurrent booking",
				zap.String("slot_id", req.SlotID),
				zap.String("guardian_id", guardianID),
			)
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", req.SlotID),
		zap.String("student_id", req.StudentID),
		zap.String("teacher_id", req.TeacherID),
		zap.Int("duration_minutes", duration),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, teacherID, bookingID string) error {
	booking, err := s.ownedByTeacher(ctx, teacherID, bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Confirm(ctx, booking.ID); err != nil {
		return err
	}

	s.log.Info("Booking confirmed", zap.String("booking_id", bookingID))
	s.notifier.BookingConfirmed(bookingID, s.guardianEmail(ctx, booking.StudentID))

	return nil
}

// CompleteBooking flips the booking to done and consumes the booked
// minutes from its balance in one transaction.
func (s *bookingService) CompleteBooking(ctx context.Context, teacherID, bookingID string) error {
	booking, err := s.ownedByTeacher(ctx, teacherID, bookingID)
	if err != nil {
		return err
	}

	minutes := booking.DurationMinutes()
	if err := s.repo.Booking.MarkDone(ctx, booking.ID, booking.TicketBalanceID, minutes, time.Now()); err != nil {
		return err
	}

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.Int("minutes_consumed", minutes),
	)
	s.notifier.BookingDone(bookingID, s.guardianEmail(ctx, booking.StudentID))

	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actorID string, role entity.UserRole, bookingID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return fmt.Errorf("invalid actor ID format %s: %w", actorID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return entity.ErrNotFound
	}

	if err := s.actorOwns(ctx, actorUUID, role, booking); err != nil {
		return err
	}

	if err := s.repo.Booking.Cancel(ctx, booking.ID, booking.SlotID, actorUUID); err != nil {
		return err
	}

	s.log.Info("Booking canceled",
		zap.String("booking_id", bookingID),
		zap.String("canceled_by", actorID),
		zap.String("role", string(role)),
	)
	s.notifier.BookingCanceled(bookingID, s.guardianEmail(ctx, booking.StudentID))

	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID string, role entity.UserRole, bookingID string) (*response.BookingResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID format %s: %w", actorID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, entity.ErrNotFound
	}

	if role != entity.RoleAdmin {
		if err := s.actorOwns(ctx, actorUUID, role, booking); err != nil {
			return nil, err
		}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListGuardianBookings(ctx context.Context, guardianID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	bookings, err := s.repo.Booking.FindByGuardianID(ctx, guardianUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list guardian bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByGuardianID(ctx, guardianUUID)
	if err != nil {
		return nil, fmt.Errorf("count guardian bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), page.Page, page.Limit(), total), nil
}

func (s *bookingService) ListTeacherBookings(ctx context.Context, teacherID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	bookings, err := s.repo.Booking.FindByTeacherID(ctx, teacherUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list teacher bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByTeacherID(ctx, teacherUUID)
	if err != nil {
		return nil, fmt.Errorf("count teacher bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), page.Page, page.Limit(), total), nil
}

// ownedByTeacher loads a booking and rejects teachers acting on other
// teachers' bookings.
func (s *bookingService) ownedByTeacher(ctx context.Context, teacherID, bookingID string) (*entity.Booking, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, entity.ErrNotFound
	}
	if booking.TeacherID != teacherUUID {
		s.denyOwnership(ctx, teacherUUID, "bookings", bookingUUID)
		return nil, entity.ErrOwnershipMismatch
	}

	return booking, nil
}

func (s *bookingService) actorOwns(ctx context.Context, actorUUID uuid.UUID, role entity.UserRole, booking *entity.Booking) error {
	switch role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleTeacher:
		if booking.TeacherID != actorUUID {
			s.denyOwnership(ctx, actorUUID, "bookings", booking.ID)
			return entity.ErrOwnershipMismatch
		}
	case entity.RoleGuardian:
		student, err := s.repo.Student.FindByID(ctx, booking.StudentID)
		if err != nil {
			return fmt.Errorf("find student: %w", err)
		}
		if student == nil || student.GuardianID != actorUUID {
			s.denyOwnership(ctx, actorUUID, "bookings", booking.ID)
			return entity.ErrOwnershipMismatch
		}
	default:
		return entity.ErrOwnershipMismatch
	}

	return nil
}

// denyOwnership leaves an audit trail for cross-account access attempts.
// Best effort; the denial itself does not depend on the insert.
func (s *bookingService) denyOwnership(ctx context.Context, actorID uuid.UUID, table string, targetID uuid.UUID) {
	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ActorID:     actorID,
		Action:      entity.AuditActionOwnershipDenied,
		TargetTable: table,
		TargetID:    targetID,
	}

	if err := s.repo.AuditLog.Insert(ctx, entry); err != nil {
		s.log.Warn("Failed to record ownership denial", zap.Error(err))
	}

	s.log.Warn("Ownership mismatch",
		zap.String("actor_id", actorID.String()),
		zap.String("target_table", table),
		zap.String("target_id", targetID.String()),
	)
}

// guardianEmail resolves the notification recipient for a booking's
// student. Failures degrade to an empty recipient, not an error.
func (s *bookingService) guardianEmail(ctx context.Context, studentID uuid.UUID) string {
	student, err := s.repo.Student.FindByID(ctx, studentID)
	if err != nil || student == nil {
		return ""
	}

	guardian, err := s.repo.User.FindByID(ctx, student.GuardianID)
	if err != nil || guardian == nil {
		return ""
	}

	return guardian.Email
}
