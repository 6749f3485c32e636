package repository

import (
	"context"
	"fmt"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	ListActive(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error)
	SetActive(ctx context.Context, id, teacherID uuid.UUID, active bool) error
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, teacher_id, name, minutes, bundle_qty, price_cents,
		                     valid_days, is_active, stripe_price_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.TeacherID,
		ticket.Name,
		ticket.Minutes,
		ticket.BundleQty,
		ticket.PriceCents,
		ticket.ValidDays,
		ticket.IsActive,
		ticket.StripePriceID,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("teacher_id", ticket.TeacherID.String()),
			zap.String("name", ticket.Name),
		)
		return fmt.Errorf("create ticket %s: %w", ticket.Name, err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, teacher_id, name, minutes, bundle_qty, price_cents,
		       valid_days, is_active, stripe_price_id, created_at, updated_at, deleted_at
		FROM tickets
		WHERE id = $1 AND deleted_at IS NULL
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TeacherID,
		&ticket.Name,
		&ticket.Minutes,
		&ticket.BundleQty,
		&ticket.PriceCents,
		&ticket.ValidDays,
		&ticket.IsActive,
		&ticket.StripePriceID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return &ticket, nil
}

func (r *ticketRepository) ListActive(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, teacher_id, name, minutes, bundle_qty, price_cents,
		       valid_days, is_active, stripe_price_id, created_at, updated_at, deleted_at
		FROM tickets
		WHERE teacher_id = $1 AND is_active = true AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		r.log.Error("Failed to list active tickets",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return nil, fmt.Errorf("list active tickets for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (r *ticketRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, teacher_id, name, minutes, bundle_qty, price_cents,
		       valid_days, is_active, stripe_price_id, created_at, updated_at, deleted_at
		FROM tickets
		WHERE teacher_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		r.log.Error("Failed to list tickets",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return nil, fmt.Errorf("list tickets for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// SetActive publishes or unpublishes a catalog entry. Existing balances
// are snapshots and stay untouched.
func (r *ticketRepository) SetActive(ctx context.Context, id, teacherID uuid.UUID, active bool) error {
	query := `
		UPDATE tickets
		SET is_active = $3, updated_at = NOW()
		WHERE id = $1 AND teacher_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, teacherID, active)
	if err != nil {
		r.log.Error("Failed to set ticket active flag",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set ticket %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", id.String())
	}

	return nil
}

func scanTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.TeacherID,
			&ticket.Name,
			&ticket.Minutes,
			&ticket.BundleQty,
			&ticket.PriceCents,
			&ticket.ValidDays,
			&ticket.IsActive,
			&ticket.StripePriceID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, nil
}
