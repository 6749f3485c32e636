package repository

import (
	"context"
	"fmt"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	ListBookable(ctx context.Context, teacherIDs []uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error)

	// Release flips a slot back to bookable, used on booking cancellation.
	Release(ctx context.Context, id uuid.UUID) error

	// DeleteBookable removes a slot only while no booking references it.
	DeleteBookable(ctx context.Context, id, teacherID uuid.UUID) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (id, teacher_id, slot_start, slot_end, is_bookable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.TeacherID,
		slot.SlotStart,
		slot.SlotEnd,
		slot.IsBookable,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("teacher_id", slot.TeacherID.String()),
			zap.Time("slot_start", slot.SlotStart),
		)
		return fmt.Errorf("create slot for teacher %s: %w", slot.TeacherID.String(), err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query := `
		SELECT id, teacher_id, slot_start, slot_end, is_bookable, created_at, updated_at, deleted_at
		FROM availability_slots
		WHERE id = $1 AND deleted_at IS NULL
	`

	var slot entity.AvailabilitySlot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.SlotStart,
		&slot.SlotEnd,
		&slot.IsBookable,
		&slot.CreatedAt,
		&slot.UpdatedAt,
		&slot.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return &slot, nil
}

// ListBookable returns open slots of the given teachers inside the range,
// ordered by slot_start ascending. Re-reads with no intervening writes
// return the identical ordered list.
func (r *slotRepository) ListBookable(ctx context.Context, teacherIDs []uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error) {
	if len(teacherIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, teacher_id, slot_start, slot_end, is_bookable, created_at, updated_at, deleted_at
		FROM availability_slots
		WHERE teacher_id = ANY($1)
		  AND is_bookable = true
		  AND deleted_at IS NULL
		  AND slot_start >= $2
		  AND slot_start < $3
		ORDER BY slot_start ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, teacherIDs, from, to)
	if err != nil {
		r.log.Error("Failed to list bookable slots",
			zap.Error(err),
			zap.Int("teacher_count", len(teacherIDs)),
		)
		return nil, fmt.Errorf("list bookable slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func (r *slotRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]*entity.AvailabilitySlot, error) {
	query := `
		SELECT id, teacher_id, slot_start, slot_end, is_bookable, created_at, updated_at, deleted_at
		FROM availability_slots
		WHERE teacher_id = $1
		  AND deleted_at IS NULL
		  AND slot_start >= $2
		  AND slot_start < $3
		ORDER BY slot_start ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, teacherID, from, to)
	if err != nil {
		r.log.Error("Failed to list teacher slots",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return nil, fmt.Errorf("list slots for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func (r *slotRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE availability_slots
		SET is_bookable = true, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("release slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	return nil
}

func (r *slotRepository) DeleteBookable(ctx context.Context, id, teacherID uuid.UUID) error {
	query := `
		UPDATE availability_slots
		SET deleted_at = NOW()
		WHERE id = $1 AND teacher_id = $2 AND is_bookable = true AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, teacherID)
	if err != nil {
		r.log.Error("Failed to delete slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("delete slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found or already reserved", id.String())
	}

	return nil
}

func scanSlots(rows pgx.Rows) ([]*entity.AvailabilitySlot, error) {
	var slots []*entity.AvailabilitySlot
	for rows.Next() {
		var slot entity.AvailabilitySlot
		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.SlotStart,
			&slot.SlotEnd,
			&slot.IsBookable,
			&slot.CreatedAt,
			&slot.UpdatedAt,
			&slot.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}
