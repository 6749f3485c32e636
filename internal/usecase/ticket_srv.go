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

type TicketService interface {
	// Catalog (teacher side)
	CreateTicket(ctx context.Context, teacherID string, req *request.CreateTicketRequest) (*response.TicketResponse, error)
	SetTicketActive(ctx context.Context, teacherID, ticketID string, active bool) error
	ListCatalog(ctx context.Context, teacherID string) ([]response.TicketResponse, error)

	// Public: active bundles of one teacher.
	ListActiveTickets(ctx context.Context, teacherID string) ([]response.TicketResponse, error)

	// Guardian side: balances usable for a new booking.
	ListEligibleBalances(ctx context.Context, guardianID, studentID string) ([]response.TicketBalanceResponse, error)

	// GrantPurchase is the payment webhook's entry: a completed checkout
	// becomes a minute balance. The payment itself was validated upstream.
	GrantPurchase(ctx context.Context, req *request.PaymentWebhookRequest) (*response.TicketBalanceResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) CreateTicket(ctx context.Context, teacherID string, req *request.CreateTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create ticket validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	now := time.Now()
	ticket := &entity.Ticket{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TeacherID:     teacherUUID,
		Name:          req.Name,
		Minutes:       req.Minutes,
		BundleQty:     req.BundleQty,
		PriceCents:    req.PriceCents,
		ValidDays:     req.ValidDays,
		IsActive:      true,
		StripePriceID: req.StripePriceID,
	}

	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		s.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("teacher_id", teacherID),
		)
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("teacher_id", teacherID),
		zap.String("name", ticket.Name),
		zap.Int("minutes", ticket.Minutes),
		zap.Int("bundle_qty", ticket.BundleQty),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

// SetTicketActive publishes or unpublishes a bundle. Balances from past
// purchases are snapshots and are not touched.
func (s *ticketService) SetTicketActive(ctx context.Context, teacherID, ticketID string, active bool) error {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	ticketUUID, err := uuid.Parse(ticketID)
	if err != nil {
		return fmt.Errorf("invalid ticket ID format %s: %w", ticketID, err)
	}

	if err := s.repo.Ticket.SetActive(ctx, ticketUUID, teacherUUID, active); err != nil {
		s.log.Warn("Failed to toggle ticket",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return fmt.Errorf("toggle ticket: %w", err)
	}

	s.log.Info("Ticket toggled",
		zap.String("ticket_id", ticketID),
		zap.Bool("active", active),
	)

	return nil
}

func (s *ticketService) ListCatalog(ctx context.Context, teacherID string) ([]response.TicketResponse, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	tickets, err := s.repo.Ticket.ListByTeacher(ctx, teacherUUID)
	if err != nil {
		s.log.Error("Failed to list catalog", zap.Error(err), zap.String("teacher_id", teacherID))
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	return response.TicketsToResponse(tickets), nil
}

func (s *ticketService) ListActiveTickets(ctx context.Context, teacherID string) ([]response.TicketResponse, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	tickets, err := s.repo.Ticket.ListActive(ctx, teacherUUID)
	if err != nil {
		s.log.Error("Failed to list active tickets", zap.Error(err), zap.String("teacher_id", teacherID))
		return nil, fmt.Errorf("list active tickets: %w", err)
	}

	return response.TicketsToResponse(tickets), nil
}

func (s *ticketService) ListEligibleBalances(ctx context.Context, guardianID, studentID string) ([]response.TicketBalanceResponse, error) {
	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student ID format %s: %w", studentID, err)
	}

	student, err := s.repo.Student.FindByID(ctx, studentUUID)
	if err != nil {
		s.log.Error("Failed to find student", zap.Error(err), zap.String("student_id", studentID))
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil {
		return nil, entity.ErrNotFound
	}
	if student.GuardianID != guardianUUID {
		s.log.Warn("Balance listing denied: student belongs to another guardian",
			zap.String("student_id", studentID),
			zap.String("guardian_id", guardianID),
		)
		return nil, entity.ErrOwnershipMismatch
	}

	balances, err := s.repo.TicketBalance.ListEligible(ctx, studentUUID, time.Now())
	if err != nil {
		s.log.Error("Failed to list eligible balances",
			zap.Error(err),
			zap.String("student_id", studentID),
		)
		return nil, fmt.Errorf("list eligible balances: %w", err)
	}

	return response.BalancesToResponse(balances), nil
}

func (s *ticketService) GrantPurchase(ctx context.Context, req *request.PaymentWebhookRequest) (*response.TicketBalanceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment webhook validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ticketUUID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID format %s: %w", req.TicketID, err)
	}

	studentUUID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("invalid student ID format %s: %w", req.StudentID, err)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketUUID)
	if err != nil {
		s.log.Error("Failed to find ticket", zap.Error(err), zap.String("ticket_id", req.TicketID))
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket == nil {
		return nil, entity.ErrNotFound
	}

	student, err := s.repo.Student.FindByID(ctx, studentUUID)
	if err != nil {
		s.log.Error("Failed to find student", zap.Error(err), zap.String("student_id", req.StudentID))
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil {
		return nil, entity.ErrNotFound
	}

	// The granted snapshot: later catalog edits never change it.
	granted := ticket.GrantedMinutes()
	expiresAt := req.PurchasedAt.AddDate(0, 0, ticket.ValidDays)

	now := time.Now()
	balance := &entity.TicketBalance{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StudentID:        studentUUID,
		TicketID:         ticketUUID,
		GrantedMinutes:   granted,
		RemainingMinutes: granted,
		PurchasedAt:      req.PurchasedAt,
		ExpiresAt:        &expiresAt,
	}

	if err := s.repo.TicketBalance.CreateFromPurchase(ctx, balance); err != nil {
		s.log.Error("Failed to create balance from purchase",
			zap.Error(err),
			zap.String("ticket_id", req.TicketID),
			zap.String("student_id", req.StudentID),
			zap.String("payment_ref", req.PaymentRef),
		)
		return nil, fmt.Errorf("create balance: %w", err)
	}

	s.log.Info("Purchase granted",
		zap.String("balance_id", balance.ID.String()),
		zap.String("student_id", req.StudentID),
		zap.Int("granted_minutes", granted),
		zap.Time("expires_at", expiresAt),
		zap.String("payment_ref", req.PaymentRef),
	)

	resp := response.BalanceToResponse(balance)
	return &resp, nil
}
