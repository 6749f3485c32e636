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

type bookingFixture struct {
	service  BookingService
	notifier *stubNotifier

	bookings *mockBookingRepo
	slots    *mockSlotRepo
	students *mockStudentRepo
	tickets  *mockTicketRepo
	balances *mockBalanceRepo
	users    *mockUserRepo
	audits   *mockAuditRepo

	guardianID uuid.UUID
	teacherID  uuid.UUID
	studentID  uuid.UUID
	slotID     uuid.UUID
	balanceID  uuid.UUID
	ticketID   uuid.UUID
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		notifier: &stubNotifier{},
		bookings: &mockBookingRepo{},
		slots:    &mockSlotRepo{},
		students: &mockStudentRepo{},
		tickets:  &mockTicketRepo{},
		balances: &mockBalanceRepo{},
		users:    &mockUserRepo{},
		audits:   &mockAuditRepo{},

		guardianID: uuid.New(),
		teacherID:  uuid.New(),
		studentID:  uuid.New(),
		slotID:     uuid.New(),
		balanceID:  uuid.New(),
		ticketID:   uuid.New(),
	}

	repo := &repository.Repository{
		User:          f.users,
		Student:       f.students,
		Slot:          f.slots,
		Ticket:        f.tickets,
		TicketBalance: f.balances,
		Booking:       f.bookings,
		AuditLog:      f.audits,
	}

	f.service = NewBookingService(repo, f.notifier, zap.NewNop())
	return f
}

func (f *bookingFixture) student() *entity.Student {
	return &entity.Student{
		Base:       entity.Base{ID: f.studentID},
		GuardianID: f.guardianID,
		Name:       "Mika",
	}
}

func (f *bookingFixture) slot() *entity.AvailabilitySlot {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	return &entity.AvailabilitySlot{
		Base:       entity.Base{ID: f.slotID},
		TeacherID:  f.teacherID,
		SlotStart:  start,
		SlotEnd:    start.Add(60 * time.Minute),
		IsBookable: true,
	}
}

func (f *bookingFixture) ticket() *entity.Ticket {
	return &entity.Ticket{
		Base:      entity.Base{ID: f.ticketID},
		TeacherID: f.teacherID,
		Name:      "60min x 4",
		Minutes:   60,
		BundleQty: 4,
	}
}

func (f *bookingFixture) balance(remaining int) *entity.TicketBalance {
	expires := time.Now().Add(30 * 24 * time.Hour)
	return &entity.TicketBalance{
		Base:             entity.Base{ID: f.balanceID},
		StudentID:        f.studentID,
		TicketID:         f.ticketID,
		GrantedMinutes:   240,
		RemainingMinutes: remaining,
		PurchasedAt:      time.Now().Add(-24 * time.Hour),
		ExpiresAt:        &expires,
	}
}

func (f *bookingFixture) createRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		TeacherID:       f.teacherID.String(),
		StudentID:       f.studentID.String(),
		SlotID:          f.slotID.String(),
		TicketBalanceID: f.balanceID.String(),
	}
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	slot := f.slot()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(slot, nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(f.balance(240), nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(f.ticket(), nil)
	f.bookings.On("CreateReserving", ctx, mock.AnythingOfType("*entity.Booking")).Return(nil)

	resp, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, slot.SlotStart, resp.StartTime)
	assert.Equal(t, slot.SlotEnd, resp.EndTime)

	created := f.bookings.Calls[0].Arguments.Get(1).(*entity.Booking)
	assert.Equal(t, 60, created.DurationMinutes())
	assert.Equal(t, f.balanceID, created.TicketBalanceID)
}

func TestBookingService_CreateBooking_SlotAlreadyTaken(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	slot := f.slot()
	slot.IsBookable = false

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(slot, nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrSlotConflict)
	f.bookings.AssertNotCalled(t, "CreateReserving", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_LostRace(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(f.slot(), nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(f.balance(240), nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(f.ticket(), nil)
	// Slot passed the read check but another booking won the write.
	f.bookings.On("CreateReserving", ctx, mock.Anything).Return(entity.ErrSlotConflict)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrSlotConflict)
}

func TestBookingService_CreateBooking_StudentOfAnotherGuardian(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	other := f.student()
	other.GuardianID = uuid.New()

	f.students.On("FindByID", ctx, f.studentID).Return(other, nil)
	f.audits.On("Insert", ctx, mock.AnythingOfType("*entity.AuditLog")).Return(nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
	f.audits.AssertCalled(t, "Insert", ctx, mock.AnythingOfType("*entity.AuditLog"))
	f.bookings.AssertNotCalled(t, "CreateReserving", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_SlotOfAnotherTeacher(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	slot := f.slot()
	slot.TeacherID = uuid.New()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(slot, nil)
	f.audits.On("Insert", ctx, mock.Anything).Return(nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
}

func TestBookingService_CreateBooking_BalanceFromAnotherTeacher(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	ticket := f.ticket()
	ticket.TeacherID = uuid.New()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(f.slot(), nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(f.balance(240), nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(ticket, nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
	f.bookings.AssertNotCalled(t, "CreateReserving", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_ExpiredBalance(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	balance := f.balance(240)
	past := time.Now().Add(-time.Hour)
	balance.ExpiresAt = &past

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(f.slot(), nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(balance, nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(f.ticket(), nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrBalanceExpired)
}

func TestBookingService_CreateBooking_InsufficientMinutes(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(f.slot(), nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(f.balance(30), nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(f.ticket(), nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
}

func TestBookingService_CreateBooking_SlotLongerThanSession(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	// 90 minute slot against a 60-minutes-per-session ticket.
	slot := f.slot()
	slot.SlotEnd = slot.SlotStart.Add(90 * time.Minute)

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(slot, nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(f.balance(240), nil)
	f.tickets.On("FindByID", ctx, f.ticketID).Return(f.ticket(), nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
}

func (f *bookingFixture) pendingBooking() *entity.Booking {
	slot := f.slot()
	return &entity.Booking{
		Base:            entity.Base{ID: uuid.New()},
		TeacherID:       f.teacherID,
		StudentID:       f.studentID,
		SlotID:          f.slotID,
		StartTime:       slot.SlotStart,
		EndTime:         slot.SlotEnd,
		Status:          entity.BookingStatusPending,
		TicketBalanceID: f.balanceID,
	}
}

func (f *bookingFixture) expectGuardianEmail(ctx context.Context) {
	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.users.On("FindByID", ctx, f.guardianID).Return(&entity.User{
		Base:  entity.Base{ID: f.guardianID},
		Email: "guardian@example.com",
		Role:  entity.RoleGuardian,
	}, nil)
}

func TestBookingService_ConfirmBooking_Success(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.bookings.On("Confirm", ctx, booking.ID).Return(nil)
	f.expectGuardianEmail(ctx)

	err := f.service.ConfirmBooking(ctx, f.teacherID.String(), booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, []string{booking.ID.String()}, f.notifier.confirmed)
}

func TestBookingService_ConfirmBooking_OtherTeachersBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.audits.On("Insert", ctx, mock.Anything).Return(nil)

	err := f.service.ConfirmBooking(ctx, uuid.New().String(), booking.ID.String())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
	f.bookings.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestBookingService_CompleteBooking_ConsumesBookedMinutes(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.bookings.On("MarkDone", ctx, booking.ID, f.balanceID, 60, mock.AnythingOfType("time.Time")).Return(nil)
	f.expectGuardianEmail(ctx)

	err := f.service.CompleteBooking(ctx, f.teacherID.String(), booking.ID.String())

	require.NoError(t, err)
	assert.Equal(t, []string{booking.ID.String()}, f.notifier.done)
}

func TestBookingService_CompleteBooking_InsufficientBalance(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.bookings.On("MarkDone", ctx, booking.ID, f.balanceID, 60, mock.Anything).Return(entity.ErrInsufficientBalance)

	err := f.service.CompleteBooking(ctx, f.teacherID.String(), booking.ID.String())

	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
	assert.Empty(t, f.notifier.done)
}

func TestBookingService_CancelBooking_GuardianReleasesSlot(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.bookings.On("Cancel", ctx, booking.ID, f.slotID, f.guardianID).Return(nil)
	f.users.On("FindByID", ctx, f.guardianID).Return(&entity.User{
		Base:  entity.Base{ID: f.guardianID},
		Email: "guardian@example.com",
	}, nil)

	err := f.service.CancelBooking(ctx, f.guardianID.String(), entity.RoleGuardian, booking.ID.String())

	require.NoError(t, err)
	// Cancellation never consumes minutes.
	f.bookings.AssertNotCalled(t, "MarkDone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{booking.ID.String()}, f.notifier.canceled)
}

func TestBookingService_CancelBooking_TeacherSide(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.bookings.On("Cancel", ctx, booking.ID, f.slotID, f.teacherID).Return(nil)
	f.expectGuardianEmail(ctx)

	err := f.service.CancelBooking(ctx, f.teacherID.String(), entity.RoleTeacher, booking.ID.String())

	require.NoError(t, err)
}

func TestBookingService_CancelBooking_TerminalBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.bookings.On("Cancel", ctx, booking.ID, f.slotID, f.teacherID).Return(entity.ErrInvalidTransition)

	err := f.service.CancelBooking(ctx, f.teacherID.String(), entity.RoleTeacher, booking.ID.String())

	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	assert.Empty(t, f.notifier.canceled)
}

func TestBookingService_CancelBooking_UnrelatedGuardian(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	booking := f.pendingBooking()

	f.bookings.On("FindByID", ctx, booking.ID).Return(booking, nil)
	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.audits.On("Insert", ctx, mock.Anything).Return(nil)

	err := f.service.CancelBooking(ctx, uuid.New().String(), entity.RoleGuardian, booking.ID.String())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
	f.bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_MissingBalance(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	f.students.On("FindByID", ctx, f.studentID).Return(f.student(), nil)
	f.slots.On("FindByID", ctx, f.slotID).Return(f.slot(), nil)
	f.balances.On("FindByID", ctx, f.balanceID).Return(nil, nil)

	_, err := f.service.CreateBooking(ctx, f.guardianID.String(), f.createRequest())

	assert.ErrorIs(t, err, entity.ErrNotFound)
}
