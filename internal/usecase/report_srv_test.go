package usecase

import (
	"context"
	"testing"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReportService_CreateReport_RequiresDoneBooking(t *testing.T) {
	bookings := &mockBookingRepo{}
	reports := &mockReportRepo{}
	repo := &repository.Repository{Booking: bookings, Report: reports}
	service := NewReportService(repo, &stubNotifier{}, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	bookingID := uuid.New()

	bookings.On("FindByID", ctx, bookingID).Return(&entity.Booking{
		Base:      entity.Base{ID: bookingID},
		TeacherID: teacherID,
		Status:    entity.BookingStatusConfirmed,
	}, nil)

	_, err := service.CreateReport(ctx, teacherID.String(), &request.CreateReportRequest{
		BookingID: bookingID.String(),
		Content:   "Covered quadratic equations.",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reports require a done lesson")
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_CreateReport_Success(t *testing.T) {
	bookings := &mockBookingRepo{}
	reports := &mockReportRepo{}
	repo := &repository.Repository{Booking: bookings, Report: reports}
	service := NewReportService(repo, &stubNotifier{}, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	bookingID := uuid.New()

	bookings.On("FindByID", ctx, bookingID).Return(&entity.Booking{
		Base:      entity.Base{ID: bookingID},
		TeacherID: teacherID,
		Status:    entity.BookingStatusDone,
	}, nil)
	reports.On("Create", ctx, mock.AnythingOfType("*entity.Report")).Return(nil)

	resp, err := service.CreateReport(ctx, teacherID.String(), &request.CreateReportRequest{
		BookingID: bookingID.String(),
		Content:   "Covered quadratic equations.",
	})

	require.NoError(t, err)
	assert.False(t, resp.Published)
	assert.Equal(t, bookingID.String(), resp.BookingID)
}

func TestReportService_UpdateReport_FrozenAfterPublish(t *testing.T) {
	reports := &mockReportRepo{}
	repo := &repository.Repository{Report: reports}
	service := NewReportService(repo, &stubNotifier{}, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	reportID := uuid.New()
	publishedAt := time.Now().Add(-time.Hour)

	reports.On("FindByID", ctx, reportID).Return(&entity.Report{
		Base:        entity.Base{ID: reportID},
		TeacherID:   teacherID,
		Published:   true,
		PublishedAt: &publishedAt,
	}, nil)

	err := service.UpdateReport(ctx, teacherID.String(), reportID.String(), &request.UpdateReportRequest{
		Content: "Edited after the fact.",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already published")
	reports.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReportService_GetBookingReport_HidesDrafts(t *testing.T) {
	bookings := &mockBookingRepo{}
	students := &mockStudentRepo{}
	reports := &mockReportRepo{}
	repo := &repository.Repository{Booking: bookings, Student: students, Report: reports}
	service := NewReportService(repo, &stubNotifier{}, zap.NewNop())

	ctx := context.Background()
	guardianID := uuid.New()
	studentID := uuid.New()
	bookingID := uuid.New()

	bookings.On("FindByID", ctx, bookingID).Return(&entity.Booking{
		Base:      entity.Base{ID: bookingID},
		StudentID: studentID,
		Status:    entity.BookingStatusDone,
	}, nil)
	students.On("FindByID", ctx, studentID).Return(&entity.Student{
		Base:       entity.Base{ID: studentID},
		GuardianID: guardianID,
	}, nil)
	reports.On("FindByBookingID", ctx, bookingID).Return(&entity.Report{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: bookingID,
		Published: false,
	}, nil)

	_, err := service.GetBookingReport(ctx, guardianID.String(), bookingID.String())

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestReportService_PublishReport_NotifiesGuardian(t *testing.T) {
	bookings := &mockBookingRepo{}
	students := &mockStudentRepo{}
	users := &mockUserRepo{}
	reports := &mockReportRepo{}
	notifier := &stubNotifier{}
	repo := &repository.Repository{Booking: bookings, Student: students, User: users, Report: reports}
	service := NewReportService(repo, notifier, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	guardianID := uuid.New()
	studentID := uuid.New()
	bookingID := uuid.New()
	reportID := uuid.New()

	reports.On("FindByID", ctx, reportID).Return(&entity.Report{
		Base:      entity.Base{ID: reportID},
		BookingID: bookingID,
		TeacherID: teacherID,
	}, nil)
	reports.On("Publish", ctx, reportID, teacherID).Return(nil)
	bookings.On("FindByID", ctx, bookingID).Return(&entity.Booking{
		Base:      entity.Base{ID: bookingID},
		StudentID: studentID,
	}, nil)
	students.On("FindByID", ctx, studentID).Return(&entity.Student{
		Base:       entity.Base{ID: studentID},
		GuardianID: guardianID,
	}, nil)
	users.On("FindByID", ctx, guardianID).Return(&entity.User{
		Base:  entity.Base{ID: guardianID},
		Email: "guardian@example.com",
	}, nil)

	err := service.PublishReport(ctx, teacherID.String(), reportID.String())

	require.NoError(t, err)
	assert.Equal(t, []string{reportID.String()}, notifier.published)
}
