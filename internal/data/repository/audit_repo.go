package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogRepository is insert-and-list only. There is no update or
// delete path anywhere in the codebase.
type AuditLogRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, targetTable string, actorID *uuid.UUID, limit, offset int) ([]*entity.AuditLog, error)
	Count(ctx context.Context, targetTable string, actorID *uuid.UUID) (int64, error)
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

const auditInsert = `
	INSERT INTO audit_logs (id, actor_id, action, target_table, target_id, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *auditLogRepository) Insert(ctx context.Context, entry *entity.AuditLog) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, auditInsert,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.TargetTable,
		entry.TargetID,
		metadata,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to insert audit log",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("actor_id", entry.ActorID.String()),
		)
		return fmt.Errorf("insert audit log %s: %w", entry.Action, err)
	}

	return nil
}

func (r *auditLogRepository) List(ctx context.Context, targetTable string, actorID *uuid.UUID, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, target_table, target_id, metadata, created_at
		FROM audit_logs
		WHERE ($1 = '' OR target_table = $1)
		  AND ($2::uuid IS NULL OR actor_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, targetTable, actorID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		var metadata []byte
		err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.TargetTable,
			&entry.TargetID,
			&metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *auditLogRepository) Count(ctx context.Context, targetTable string, actorID *uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM audit_logs
		WHERE ($1 = '' OR target_table = $1)
		  AND ($2::uuid IS NULL OR actor_id = $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, targetTable, actorID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count audit logs", zap.Error(err))
		return 0, fmt.Errorf("count audit logs: %w", err)
	}

	return count, nil
}
