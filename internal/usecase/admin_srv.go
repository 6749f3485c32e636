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

type AdminService interface {
	// AdjustBalance overrides a balance's remaining minutes or expiry.
	// The change and its audit entry commit together.
	AdjustBalance(ctx context.Context, adminID, balanceID string, req *request.AdjustBalanceRequest) error

	SuspendUser(ctx context.Context, adminID, userID string) error
	ReactivateUser(ctx context.Context, adminID, userID string) error

	// AssignTeacher links a teacher to a guardian so the guardian can see
	// that teacher's availability and book lessons.
	AssignTeacher(ctx context.Context, teacherUserID, guardianID string) error

	ListUsers(ctx context.Context, role string, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	ListBookings(ctx context.Context, status string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListAuditLogs(ctx context.Context, targetTable, actorID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) AdjustBalance(ctx context.Context, adminID, balanceID string, req *request.AdjustBalanceRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Adjust balance validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.RemainingMinutes == nil && req.ExpiresAt == nil {
		return fmt.Errorf("nothing to adjust")
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	balanceUUID, err := uuid.Parse(balanceID)
	if err != nil {
		return fmt.Errorf("invalid balance ID format %s: %w", balanceID, err)
	}

	balance, err := s.repo.TicketBalance.FindByID(ctx, balanceUUID)
	if err != nil {
		return fmt.Errorf("find balance: %w", err)
	}
	if balance == nil {
		return entity.ErrNotFound
	}

	remaining := balance.RemainingMinutes
	if req.RemainingMinutes != nil {
		remaining = *req.RemainingMinutes
	}
	expiresAt := balance.ExpiresAt
	if req.ExpiresAt != nil {
		expiresAt = req.ExpiresAt
	}

	metadata := map[string]any{
		"remaining_before": balance.RemainingMinutes,
		"remaining_after":  remaining,
	}
	if balance.ExpiresAt != nil {
		metadata["expires_before"] = balance.ExpiresAt.Format(time.RFC3339)
	}
	if expiresAt != nil {
		metadata["expires_after"] = expiresAt.Format(time.RFC3339)
	}

	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ActorID:     adminUUID,
		Action:      entity.AuditActionBalanceAdjusted,
		TargetTable: "ticket_balances",
		TargetID:    balanceUUID,
		Metadata:    metadata,
	}

	if err := s.repo.TicketBalance.AdjustAudited(ctx, balanceUUID, remaining, expiresAt, entry); err != nil {
		return err
	}

	s.log.Info("Balance adjusted",
		zap.String("balance_id", balanceID),
		zap.String("admin_id", adminID),
		zap.Int("remaining_before", balance.RemainingMinutes),
		zap.Int("remaining_after", remaining),
	)

	return nil
}

func (s *adminService) SuspendUser(ctx context.Context, adminID, userID string) error {
	if err := s.setUserActive(ctx, adminID, userID, false, entity.AuditActionUserSuspended); err != nil {
		return err
	}

	// A suspended user's tokens die with the account.
	userUUID, _ := uuid.Parse(userID)
	if err := s.repo.Session.RevokeAllUserSessions(ctx, userUUID); err != nil {
		s.log.Warn("Failed to revoke sessions of suspended user",
			zap.Error(err), zap.String("user_id", userID))
	}

	return nil
}

func (s *adminService) ReactivateUser(ctx context.Context, adminID, userID string) error {
	return s.setUserActive(ctx, adminID, userID, true, entity.AuditActionUserReactivated)
}

func (s *adminService) setUserActive(ctx context.Context, adminID, userID string, active bool, action string) error {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if err := s.repo.User.SetActive(ctx, userUUID, active); err != nil {
		return err
	}

	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ActorID:     adminUUID,
		Action:      action,
		TargetTable: "users",
		TargetID:    userUUID,
	}
	if err := s.repo.AuditLog.Insert(ctx, entry); err != nil {
		s.log.Warn("Failed to record user status change", zap.Error(err))
	}

	s.log.Info("User status changed",
		zap.String("user_id", userID),
		zap.String("admin_id", adminID),
		zap.Bool("active", active),
	)

	return nil
}

func (s *adminService) AssignTeacher(ctx context.Context, teacherUserID, guardianID string) error {
	teacherUUID, err := uuid.Parse(teacherUserID)
	if err != nil {
		return fmt.Errorf("invalid teacher ID format %s: %w", teacherUserID, err)
	}

	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	teacher, err := s.repo.User.FindByID(ctx, teacherUUID)
	if err != nil {
		return fmt.Errorf("find teacher: %w", err)
	}
	if teacher == nil || teacher.Role != entity.RoleTeacher {
		return entity.ErrNotFound
	}

	guardian, err := s.repo.User.FindByID(ctx, guardianUUID)
	if err != nil {
		return fmt.Errorf("find guardian: %w", err)
	}
	if guardian == nil || guardian.Role != entity.RoleGuardian {
		return entity.ErrNotFound
	}

	if err := s.repo.Teacher.AssignGuardian(ctx, teacherUUID, guardianUUID); err != nil {
		return err
	}

	s.log.Info("Teacher assigned to guardian",
		zap.String("teacher_id", teacherUserID),
		zap.String("guardian_id", guardianID),
	)

	return nil
}

func (s *adminService) ListUsers(ctx context.Context, role string, page request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, role, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), page.Page, page.Limit(), total), nil
}

func (s *adminService) ListBookings(ctx context.Context, status string, page request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, status, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), page.Page, page.Limit(), total), nil
}

func (s *adminService) ListAuditLogs(ctx context.Context, targetTable, actorID string, page request.PaginatedRequest) (*response.PaginatedResponse[response.AuditLogResponse], error) {
	var actorUUID *uuid.UUID
	if actorID != "" {
		parsed, err := uuid.Parse(actorID)
		if err != nil {
			return nil, fmt.Errorf("invalid actor ID format %s: %w", actorID, err)
		}
		actorUUID = &parsed
	}

	entries, err := s.repo.AuditLog.List(ctx, targetTable, actorUUID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	total, err := s.repo.AuditLog.Count(ctx, targetTable, actorUUID)
	if err != nil {
		return nil, fmt.Errorf("count audit logs: %w", err)
	}

	return response.NewPaginatedResponse(response.AuditLogsToResponse(entries), page.Page, page.Limit(), total), nil
}
