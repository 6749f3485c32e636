package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketBalanceRepository interface {
	CreateFromPurchase(ctx context.Context, balance *entity.TicketBalance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketBalance, error)

	// ListEligible returns balances with minutes left and an unexpired
	// validity window, soonest expiry first (use-it-or-lose-it order).
	ListEligible(ctx context.Context, studentID uuid.UUID, now time.Time) ([]*entity.TicketBalance, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.TicketBalance, error)

	// AdjustAudited is the admin override. The new values and the audit
	// entry capturing before/after commit in one transaction; a balance
	// is never changed without its trail.
	AdjustAudited(ctx context.Context, id uuid.UUID, remainingMinutes int, expiresAt *time.Time, entry *entity.AuditLog) error
}

type ticketBalanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketBalanceRepository(db database.PgxIface, log *zap.Logger) TicketBalanceRepository {
	return &ticketBalanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket_balance")),
	}
}

func (r *ticketBalanceRepository) CreateFromPurchase(ctx context.Context, balance *entity.TicketBalance) error {
	query := `
		INSERT INTO ticket_balances (id, student_id, ticket_id, granted_minutes, remaining_minutes,
		                             purchased_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		balance.ID,
		balance.StudentID,
		balance.TicketID,
		balance.GrantedMinutes,
		balance.RemainingMinutes,
		balance.PurchasedAt,
		balance.ExpiresAt,
		balance.CreatedAt,
		balance.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket balance",
			zap.Error(err),
			zap.String("student_id", balance.StudentID.String()),
			zap.String("ticket_id", balance.TicketID.String()),
		)
		return fmt.Errorf("create balance for student %s: %w", balance.StudentID.String(), err)
	}

	return nil
}

func (r *ticketBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketBalance, error) {
	query := `
		SELECT id, student_id, ticket_id, granted_minutes, remaining_minutes,
		       purchased_at, expires_at, created_at, updated_at, deleted_at
		FROM ticket_balances
		WHERE id = $1 AND deleted_at IS NULL
	`

	var balance entity.TicketBalance
	err := r.db.QueryRow(ctx, query, id).Scan(
		&balance.ID,
		&balance.StudentID,
		&balance.TicketID,
		&balance.GrantedMinutes,
		&balance.RemainingMinutes,
		&balance.PurchasedAt,
		&balance.ExpiresAt,
		&balance.CreatedAt,
		&balance.UpdatedAt,
		&balance.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find balance by ID",
			zap.Error(err),
			zap.String("balance_id", id.String()),
		)
		return nil, fmt.Errorf("find balance by ID %s: %w", id.String(), err)
	}

	return &balance, nil
}

func (r *ticketBalanceRepository) ListEligible(ctx context.Context, studentID uuid.UUID, now time.Time) ([]*entity.TicketBalance, error) {
	query := `
		SELECT id, student_id, ticket_id, granted_minutes, remaining_minutes,
		       purchased_at, expires_at, created_at, updated_at, deleted_at
		FROM ticket_balances
		WHERE student_id = $1
		  AND remaining_minutes > 0
		  AND (expires_at IS NULL OR expires_at >= $2)
		  AND deleted_at IS NULL
		ORDER BY expires_at ASC NULLS LAST, purchased_at ASC
	`

	rows, err := r.db.Query(ctx, query, studentID, now)
	if err != nil {
		r.log.Error("Failed to list eligible balances",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, fmt.Errorf("list eligible balances for student %s: %w", studentID.String(), err)
	}
	defer rows.Close()

	return scanBalances(rows)
}

func (r *ticketBalanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.TicketBalance, error) {
	query := `
		SELECT id, student_id, ticket_id, granted_minutes, remaining_minutes,
		       purchased_at, expires_at, created_at, updated_at, deleted_at
		FROM ticket_balances
		WHERE student_id = $1 AND deleted_at IS NULL
		ORDER BY purchased_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		r.log.Error("Failed to list balances",
			zap.Error(err),
			zap.String("student_id", studentID.String()),
		)
		return nil, fmt.Errorf("list balances for student %s: %w", studentID.String(), err)
	}
	defer rows.Close()

	return scanBalances(rows)
}

func (r *ticketBalanceRepository) AdjustAudited(ctx context.Context, id uuid.UUID, remainingMinutes int, expiresAt *time.Time, entry *entity.AuditLog) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE ticket_balances
			SET remaining_minutes = $2, expires_at = $3, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		result, err := tx.Exec(ctx, query, id, remainingMinutes, expiresAt)
		if err != nil {
			return fmt.Errorf("adjust balance %s: %w", id.String(), err)
		}
		if result.RowsAffected() == 0 {
			return entity.ErrNotFound
		}

		metadata, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}

		_, err = tx.Exec(ctx, auditInsert,
			entry.ID,
			entry.ActorID,
			entry.Action,
			entry.TargetTable,
			entry.TargetID,
			metadata,
			entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert audit log %s: %w", entry.Action, err)
		}

		return nil
	})

	if err != nil {
		if err != entity.ErrNotFound {
			r.log.Error("Failed to adjust balance",
				zap.Error(err),
				zap.String("balance_id", id.String()),
			)
		}
		return err
	}

	return nil
}

func scanBalances(rows pgx.Rows) ([]*entity.TicketBalance, error) {
	var balances []*entity.TicketBalance
	for rows.Next() {
		var balance entity.TicketBalance
		err := rows.Scan(
			&balance.ID,
			&balance.StudentID,
			&balance.TicketID,
			&balance.GrantedMinutes,
			&balance.RemainingMinutes,
			&balance.PurchasedAt,
			&balance.ExpiresAt,
			&balance.CreatedAt,
			&balance.UpdatedAt,
			&balance.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		balances = append(balances, &balance)
	}

	return balances, nil
}
