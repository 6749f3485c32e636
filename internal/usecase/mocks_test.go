package usecase

import (
	"context"
	"time"

	"lesson-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Repository mocks shared by the service tests.

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, role string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, role, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) CountAll(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTeacherRepo struct{ mock.Mock }

func (m *mockTeacherRepo) Create(ctx context.Context, profile *entity.TeacherProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockTeacherRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TeacherProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.TeacherProfile)
	return profile, args.Error(1)
}

func (m *mockTeacherRepo) Update(ctx context.Context, profile *entity.TeacherProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockTeacherRepo) AssignGuardian(ctx context.Context, teacherUserID, guardianID uuid.UUID) error {
	return m.Called(ctx, teacherUserID, guardianID).Error(0)
}

func (m *mockTeacherRepo) ListAssignedTeacherIDs(ctx context.Context, guardianID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, guardianID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockTeacherRepo) IsAssigned(ctx context.Context, teacherUserID, guardianID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teacherUserID, guardianID)
	return args.Bool(0), args.Error(1)
}

type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) Create(ctx context.Context, student *entity.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*entity.Student)
	return student, args.Error(1)
}

func (m *mockStudentRepo) FindByGuardianID(ctx context.Context, guardianID uuid.UUID) ([]*entity.Student, error) {
	args := m.Called(ctx, guardianID)
	students, _ := args.Get(0).([]*entity.Student)
	return students, args.Error(1)
}

func (m *mockStudentRepo) Update(ctx context.Context, student *entity.Student) error {
	return m.Called(ctx, student).Error(0)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *mockSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*entity.AvailabilitySlot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) ListBookable(ctx context.Context, teacherIDs []uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, teacherIDs, from, to)
	slots, _ := args.Get(0).([]*entity.AvailabilitySlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error) {
	args := m.Called(ctx, teacherID, from, to)
	slots, _ := args.Get(0).([]*entity.AvailabilitySlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) Release(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSlotRepo) DeleteBookable(ctx context.Context, id, teacherID uuid.UUID) error {
	return m.Called(ctx, id, teacherID).Error(0)
}

type mockTicketRepo struct{ mock.Mock }

func (m *mockTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, id)
	ticket, _ := args.Get(0).(*entity.Ticket)
	return ticket, args.Error(1)
}

func (m *mockTicketRepo) ListActive(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error) {
	args := m.Called(ctx, teacherID)
	tickets, _ := args.Get(0).([]*entity.Ticket)
	return tickets, args.Error(1)
}

func (m *mockTicketRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error) {
	args := m.Called(ctx, teacherID)
	tickets, _ := args.Get(0).([]*entity.Ticket)
	return tickets, args.Error(1)
}

func (m *mockTicketRepo) SetActive(ctx context.Context, id, teacherID uuid.UUID, active bool) error {
	return m.Called(ctx, id, teacherID, active).Error(0)
}

type mockBalanceRepo struct{ mock.Mock }

func (m *mockBalanceRepo) CreateFromPurchase(ctx context.Context, balance *entity.TicketBalance) error {
	return m.Called(ctx, balance).Error(0)
}

func (m *mockBalanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketBalance, error) {
	args := m.Called(ctx, id)
	balance, _ := args.Get(0).(*entity.TicketBalance)
	return balance, args.Error(1)
}

func (m *mockBalanceRepo) ListEligible(ctx context.Context, studentID uuid.UUID, now time.Time) ([]*entity.TicketBalance, error) {
	args := m.Called(ctx, studentID, now)
	balances, _ := args.Get(0).([]*entity.TicketBalance)
	return balances, args.Error(1)
}

func (m *mockBalanceRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.TicketBalance, error) {
	args := m.Called(ctx, studentID)
	balances, _ := args.Get(0).([]*entity.TicketBalance)
	return balances, args.Error(1)
}

func (m *mockBalanceRepo) AdjustAudited(ctx context.Context, id uuid.UUID, remainingMinutes int, expiresAt *time.Time, entry *entity.AuditLog) error {
	return m.Called(ctx, id, remainingMinutes, expiresAt, entry).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) CreateReserving(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) MarkDone(ctx context.Context, id, balanceID uuid.UUID, minutes int, now time.Time) error {
	return m.Called(ctx, id, balanceID, minutes, now).Error(0)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id, slotID uuid.UUID, canceledBy uuid.UUID) error {
	return m.Called(ctx, id, slotID, canceledBy).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) FindByTeacherID(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, teacherID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) CountByTeacherID(ctx context.Context, teacherID uuid.UUID) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindByGuardianID(ctx context.Context, guardianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, guardianID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) CountByGuardianID(ctx context.Context, guardianID uuid.UUID) (int64, error) {
	args := m.Called(ctx, guardianID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, status, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) CountAll(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) Create(ctx context.Context, report *entity.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *mockReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	args := m.Called(ctx, id)
	report, _ := args.Get(0).(*entity.Report)
	return report, args.Error(1)
}

func (m *mockReportRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Report, error) {
	args := m.Called(ctx, bookingID)
	report, _ := args.Get(0).(*entity.Report)
	return report, args.Error(1)
}

func (m *mockReportRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Report, error) {
	args := m.Called(ctx, teacherID, limit, offset)
	reports, _ := args.Get(0).([]*entity.Report)
	return reports, args.Error(1)
}

func (m *mockReportRepo) CountByTeacher(ctx context.Context, teacherID uuid.UUID) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) Update(ctx context.Context, report *entity.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *mockReportRepo) Publish(ctx context.Context, id, teacherID uuid.UUID) error {
	return m.Called(ctx, id, teacherID).Error(0)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Insert(ctx context.Context, log *entity.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockAuditRepo) List(ctx context.Context, targetTable string, actorID *uuid.UUID, limit, offset int) ([]*entity.AuditLog, error) {
	args := m.Called(ctx, targetTable, actorID, limit, offset)
	entries, _ := args.Get(0).([]*entity.AuditLog)
	return entries, args.Error(1)
}

func (m *mockAuditRepo) Count(ctx context.Context, targetTable string, actorID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, targetTable, actorID)
	return args.Get(0).(int64), args.Error(1)
}

// stubNotifier records dispatched events without goroutines, so tests
// can assert synchronously.
type stubNotifier struct {
	confirmed []string
	done      []string
	canceled  []string
	published []string
}

func (n *stubNotifier) BookingConfirmed(bookingID, guardianEmail string) {
	n.confirmed = append(n.confirmed, bookingID)
}

func (n *stubNotifier) BookingDone(bookingID, guardianEmail string) {
	n.done = append(n.done, bookingID)
}

func (n *stubNotifier) BookingCanceled(bookingID, guardianEmail string) {
	n.canceled = append(n.canceled, bookingID)
}

func (n *stubNotifier) ReportPublished(reportID, guardianEmail string) {
	n.published = append(n.published, reportID)
}
