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

func TestTicketService_GrantPurchase_SnapshotsTheGrant(t *testing.T) {
	tickets := &mockTicketRepo{}
	students := &mockStudentRepo{}
	balances := &mockBalanceRepo{}

	repo := &repository.Repository{
		Ticket:        tickets,
		Student:       students,
		TicketBalance: balances,
	}
	service := NewTicketService(repo, zap.NewNop())

	ctx := context.Background()
	ticketID := uuid.New()
	studentID := uuid.New()
	purchasedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tickets.On("FindByID", ctx, ticketID).Return(&entity.Ticket{
		Base:      entity.Base{ID: ticketID},
		TeacherID: uuid.New(),
		Minutes:   60,
		BundleQty: 4,
		ValidDays: 90,
	}, nil)
	students.On("FindByID", ctx, studentID).Return(&entity.Student{
		Base: entity.Base{ID: studentID},
	}, nil)
	balances.On("CreateFromPurchase", ctx, mock.AnythingOfType("*entity.TicketBalance")).Return(nil)

	resp, err := service.GrantPurchase(ctx, &request.PaymentWebhookRequest{
		EventType:   "checkout.completed",
		TicketID:    ticketID.String(),
		StudentID:   studentID.String(),
		PurchasedAt: purchasedAt,
		PaymentRef:  "pi_123",
	})

	require.NoError(t, err)
	assert.Equal(t, 240, resp.GrantedMinutes)
	assert.Equal(t, 240, resp.RemainingMinutes)

	created := balances.Calls[0].Arguments.Get(1).(*entity.TicketBalance)
	require.NotNil(t, created.ExpiresAt)
	assert.Equal(t, purchasedAt.AddDate(0, 0, 90), *created.ExpiresAt)
}

func TestTicketService_GrantPurchase_UnknownTicket(t *testing.T) {
	tickets := &mockTicketRepo{}
	repo := &repository.Repository{Ticket: tickets}
	service := NewTicketService(repo, zap.NewNop())

	ctx := context.Background()
	ticketID := uuid.New()

	tickets.On("FindByID", ctx, ticketID).Return(nil, nil)

	_, err := service.GrantPurchase(ctx, &request.PaymentWebhookRequest{
		EventType:   "checkout.completed",
		TicketID:    ticketID.String(),
		StudentID:   uuid.New().String(),
		PurchasedAt: time.Now(),
		PaymentRef:  "pi_456",
	})

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestTicketService_ListEligibleBalances_OtherGuardiansStudent(t *testing.T) {
	students := &mockStudentRepo{}
	repo := &repository.Repository{Student: students}
	service := NewTicketService(repo, zap.NewNop())

	ctx := context.Background()
	studentID := uuid.New()

	students.On("FindByID", ctx, studentID).Return(&entity.Student{
		Base:       entity.Base{ID: studentID},
		GuardianID: uuid.New(),
	}, nil)

	_, err := service.ListEligibleBalances(ctx, uuid.New().String(), studentID.String())

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
}

func TestTicketService_ListEligibleBalances_Success(t *testing.T) {
	students := &mockStudentRepo{}
	balances := &mockBalanceRepo{}
	repo := &repository.Repository{Student: students, TicketBalance: balances}
	service := NewTicketService(repo, zap.NewNop())

	ctx := context.Background()
	guardianID := uuid.New()
	studentID := uuid.New()

	students.On("FindByID", ctx, studentID).Return(&entity.Student{
		Base:       entity.Base{ID: studentID},
		GuardianID: guardianID,
	}, nil)
	balances.On("ListEligible", ctx, studentID, mock.AnythingOfType("time.Time")).Return([]*entity.TicketBalance{
		{
			Base:             entity.Base{ID: uuid.New()},
			StudentID:        studentID,
			GrantedMinutes:   240,
			RemainingMinutes: 120,
			PurchasedAt:      time.Now().Add(-10 * 24 * time.Hour),
		},
	}, nil)

	resp, err := service.ListEligibleBalances(ctx, guardianID.String(), studentID.String())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, 120, resp[0].RemainingMinutes)
}

func TestTicketService_CreateTicket_DefaultsToActive(t *testing.T) {
	tickets := &mockTicketRepo{}
	repo := &repository.Repository{Ticket: tickets}
	service := NewTicketService(repo, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()

	tickets.On("Create", ctx, mock.AnythingOfType("*entity.Ticket")).Return(nil)

	resp, err := service.CreateTicket(ctx, teacherID.String(), &request.CreateTicketRequest{
		Name:       "45min x 8",
		Minutes:    45,
		BundleQty:  8,
		PriceCents: 24000,
		ValidDays:  120,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	created := tickets.Calls[0].Arguments.Get(1).(*entity.Ticket)
	assert.Equal(t, 360, created.GrantedMinutes())
}
