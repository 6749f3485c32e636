package usecase

import (
	"context"
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

type ReportService interface {
	// CreateReport writes the lesson report for a done booking. One
	// report per booking; the second attempt fails.
	CreateReport(ctx context.Context, teacherID string, req *request.CreateReportRequest) (*response.ReportResponse, error)

	// UpdateReport edits a draft. Published reports are frozen.
	UpdateReport(ctx context.Context, teacherID, reportID string, req *request.UpdateReportRequest) error

	// PublishReport makes the report visible to the guardian and
	// notifies them.
	PublishReport(ctx context.Context, teacherID, reportID string) error

	// GetBookingReport is the guardian's read: only published reports of
	// their own students' bookings.
	GetBookingReport(ctx context.Context, guardianID, bookingID string) (*response.ReportResponse, error)

	ListTeacherReports(ctx context.Context, teacherID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReportResponse], error)
}

type reportService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewReportService(repo *repository.Repository, notifier Notifier, log *zap.Logger) ReportService {
	return &reportService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "report")),
	}
}

func (s *reportService) CreateReport(ctx context.Context, teacherID string, req *request.CreateReportRequest) (*response.ReportResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create report validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	bookingUUID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, entity.ErrNotFound
	}
	if booking.TeacherID != teacherUUID {
		return nil, entity.ErrOwnershipMismatch
	}
	if booking.Status != entity.BookingStatusDone {
		return nil, fmt.Errorf("booking %s is %s, reports require a done lesson", req.BookingID, booking.Status)
	}

	now := time.Now()
	report := &entity.Report{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: bookingUUID,
		TeacherID: teacherUUID,
		Content:   req.Content,
		Summary:   req.Summary,
	}

	if err := s.repo.Report.Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info("Report created",
		zap.String("report_id", report.ID.String()),
		zap.String("booking_id", req.BookingID),
	)

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *reportService) UpdateReport(ctx context.Context, teacherID, reportID string, req *request.UpdateReportRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update report validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	report, err := s.ownedReport(ctx, teacherID, reportID)
	if err != nil {
		return err
	}
	if report.Published {
		return fmt.Errorf("report %s is already published", reportID)
	}

	report.Content = req.Content
	report.Summary = req.Summary
	report.UpdatedAt = time.Now()

	if err := s.repo.Report.Update(ctx, report); err != nil {
		return err
	}

	s.log.Info("Report updated", zap.String("report_id", reportID))

	return nil
}

func (s *reportService) PublishReport(ctx context.Context, teacherID, reportID string) error {
	report, err := s.ownedReport(ctx, teacherID, reportID)
	if err != nil {
		return err
	}

	if err := s.repo.Report.Publish(ctx, report.ID, report.TeacherID); err != nil {
		return err
	}

	s.log.Info("Report published", zap.String("report_id", reportID))
	s.notifier.ReportPublished(reportID, s.recipientFor(ctx, report.BookingID))

	return nil
}

func (s *reportService) GetBookingReport(ctx context.Context, guardianID, bookingID string) (*response.ReportResponse, error) {
	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
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

	student, err := s.repo.Student.FindByID(ctx, booking.StudentID)
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil || student.GuardianID != guardianUUID {
		return nil, entity.ErrOwnershipMismatch
	}

	report, err := s.repo.Report.FindByBookingID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if report == nil || !report.Published {
		// Drafts are invisible to guardians.
		return nil, entity.ErrNotFound
	}

	resp := response.ReportToResponse(report)
	return &resp, nil
}

func (s *reportService) ListTeacherReports(ctx context.Context, teacherID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReportResponse], error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	reports, err := s.repo.Report.ListByTeacher(ctx, teacherUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list teacher reports: %w", err)
	}

	total, err := s.repo.Report.CountByTeacher(ctx, teacherUUID)
	if err != nil {
		return nil, fmt.Errorf("count teacher reports: %w", err)
	}

	return response.NewPaginatedResponse(response.ReportsToResponse(reports), page.Page, page.Limit(), total), nil
}

func (s *reportService) ownedReport(ctx context.Context, teacherID, reportID string) (*entity.Report, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	reportUUID, err := uuid.Parse(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID format %s: %w", reportID, err)
	}

	report, err := s.repo.Report.FindByID(ctx, reportUUID)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if report == nil {
		return nil, entity.ErrNotFound
	}
	if report.TeacherID != teacherUUID {
		return nil, entity.ErrOwnershipMismatch
	}

	return report, nil
}

func (s *reportService) recipientFor(ctx context.Context, bookingID uuid.UUID) string {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		return ""
	}

	student, err := s.repo.Student.FindByID(ctx, booking.StudentID)
	if err != nil || student == nil {
		return ""
	}

	guardian, err := s.repo.User.FindByID(ctx, student.GuardianID)
	if err != nil || guardian == nil {
		return ""
	}

	return guardian.Email
}
