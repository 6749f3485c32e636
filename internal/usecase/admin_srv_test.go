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

func TestAdminService_AdjustBalance_RecordsBeforeAndAfter(t *testing.T) {
	balances := &mockBalanceRepo{}
	repo := &repository.Repository{TicketBalance: balances}
	service := NewAdminService(repo, zap.NewNop())

	ctx := context.Background()
	adminID := uuid.New()
	balanceID := uuid.New()
	expires := time.Now().Add(30 * 24 * time.Hour)

	balances.On("FindByID", ctx, balanceID).Return(&entity.TicketBalance{
		Base:             entity.Base{ID: balanceID},
		GrantedMinutes:   240,
		RemainingMinutes: 100,
		ExpiresAt:        &expires,
	}, nil)
	balances.On("AdjustAudited", ctx, balanceID, 180, &expires, mock.AnythingOfType("*entity.AuditLog")).Return(nil)

	newRemaining := 180
	err := service.AdjustBalance(ctx, adminID.String(), balanceID.String(), &request.AdjustBalanceRequest{
		RemainingMinutes: &newRemaining,
	})

	require.NoError(t, err)

	entry := balances.Calls[1].Arguments.Get(4).(*entity.AuditLog)
	assert.Equal(t, entity.AuditActionBalanceAdjusted, entry.Action)
	assert.Equal(t, adminID, entry.ActorID)
	assert.Equal(t, 100, entry.Metadata["remaining_before"])
	assert.Equal(t, 180, entry.Metadata["remaining_after"])
}

func TestAdminService_AdjustBalance_NothingToAdjust(t *testing.T) {
	balances := &mockBalanceRepo{}
	repo := &repository.Repository{TicketBalance: balances}
	service := NewAdminService(repo, zap.NewNop())

	err := service.AdjustBalance(context.Background(), uuid.New().String(), uuid.New().String(), &request.AdjustBalanceRequest{})

	require.Error(t, err)
	balances.AssertNotCalled(t, "AdjustAudited", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_SuspendUser_RevokesSessions(t *testing.T) {
	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	audits := &mockAuditRepo{}
	repo := &repository.Repository{User: users, Session: sessions, AuditLog: audits}
	service := NewAdminService(repo, zap.NewNop())

	ctx := context.Background()
	adminID := uuid.New()
	userID := uuid.New()

	users.On("SetActive", ctx, userID, false).Return(nil)
	audits.On("Insert", ctx, mock.AnythingOfType("*entity.AuditLog")).Return(nil)
	sessions.On("RevokeAllUserSessions", ctx, userID).Return(nil)

	err := service.SuspendUser(ctx, adminID.String(), userID.String())

	require.NoError(t, err)
	sessions.AssertCalled(t, "RevokeAllUserSessions", ctx, userID)

	entry := audits.Calls[0].Arguments.Get(1).(*entity.AuditLog)
	assert.Equal(t, entity.AuditActionUserSuspended, entry.Action)
}

func TestAdminService_AssignTeacher_RejectsWrongRoles(t *testing.T) {
	users := &mockUserRepo{}
	teachers := &mockTeacherRepo{}
	repo := &repository.Repository{User: users, Teacher: teachers}
	service := NewAdminService(repo, zap.NewNop())

	ctx := context.Background()
	guardianID := uuid.New()
	notATeacher := uuid.New()

	users.On("FindByID", ctx, notATeacher).Return(&entity.User{
		Base: entity.Base{ID: notATeacher},
		Role: entity.RoleGuardian,
	}, nil)

	err := service.AssignTeacher(ctx, notATeacher.String(), guardianID.String())

	assert.ErrorIs(t, err, entity.ErrNotFound)
	teachers.AssertNotCalled(t, "AssignGuardian", mock.Anything, mock.Anything, mock.Anything)
}
