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

type BookingRepository interface {
	// CreateReserving inserts the booking and flips its slot to
	// unbookable in one transaction. Returns entity.ErrSlotConflict and
	// persists nothing when the slot was taken first.
	CreateReserving(ctx context.Context, booking *entity.Booking) error

	// Confirm moves pending -> confirmed.
	Confirm(ctx context.Context, id uuid.UUID) error

	// MarkDone moves pending/confirmed -> done and decrements the
	// referenced balance by minutes in the same transaction. Both happen
	// or neither does. Expiry is re-checked at consumption time.
	MarkDone(ctx context.Context, id, balanceID uuid.UUID, minutes int, now time.Time) error

	// Cancel moves pending/confirmed -> canceled and releases the slot.
	// Minutes are never consumed on cancellation.
	Cancel(ctx context.Context, id, slotID uuid.UUID, canceledBy uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByTeacherID(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByTeacherID(ctx context.Context, teacherID uuid.UUID) (int64, error)
	FindByGuardianID(ctx context.Context, guardianID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByGuardianID(ctx context.Context, guardianID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, status string) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, teacher_id, student_id, slot_id, start_time, end_time,
	status, ticket_balance_id, canceled_by, created_at, updated_at`

func (r *bookingRepository) CreateReserving(ctx context.Context, booking *entity.Booking) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// Conditional reserve: the second of two concurrent attempts
		// sees zero rows affected, not a silent success.
		reserve := `
			UPDATE availability_slots
			SET is_bookable = false, updated_at = NOW()
			WHERE id = $1 AND is_bookable = true AND deleted_at IS NULL
		`

		result, err := tx.Exec(ctx, reserve, booking.SlotID)
		if err != nil {
			return fmt.Errorf("reserve slot %s: %w", booking.SlotID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return entity.ErrSlotConflict
		}

		insert := `
			INSERT INTO bookings (id, teacher_id, student_id, slot_id, start_time, end_time,
			                      status, ticket_balance_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err = tx.Exec(ctx, insert,
			booking.ID,
			booking.TeacherID,
			booking.StudentID,
			booking.SlotID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.TicketBalanceID,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			// Rolling back releases the slot reservation; a failed
			// insert never leaves the slot locked without a booking.
			return fmt.Errorf("insert booking %s: %w", booking.ID.String(), err)
		}

		return nil
	})

	if err != nil {
		if err != entity.ErrSlotConflict {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("slot_id", booking.SlotID.String()),
			)
		}
		return err
	}

	return nil
}

func (r *bookingRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, id, entity.BookingStatusConfirmed, entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return r.transitionFailure(ctx, id)
	}

	return nil
}

func (r *bookingRepository) MarkDone(ctx context.Context, id, balanceID uuid.UUID, minutes int, now time.Time) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		flip := `
			UPDATE bookings
			SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status IN ($3, $4)
		`

		result, err := tx.Exec(ctx, flip, id,
			entity.BookingStatusDone,
			entity.BookingStatusPending,
			entity.BookingStatusConfirmed,
		)
		if err != nil {
			return fmt.Errorf("mark booking %s done: %w", id.String(), err)
		}
		if result.RowsAffected() == 0 {
			return r.transitionFailure(ctx, id)
		}

		// Guarded decrement, not read-then-write: two concurrent
		// consumers of one balance cannot both get the last minutes.
		consume := `
			UPDATE ticket_balances
			SET remaining_minutes = remaining_minutes - $2, updated_at = NOW()
			WHERE id = $1
			  AND remaining_minutes >= $2
			  AND (expires_at IS NULL OR expires_at >= $3)
			  AND deleted_at IS NULL
		`

		result, err = tx.Exec(ctx, consume, balanceID, minutes, now)
		if err != nil {
			return fmt.Errorf("consume %d minutes from balance %s: %w", minutes, balanceID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return r.consumeFailure(ctx, tx, balanceID, minutes, now)
		}

		return nil
	})

	if err != nil {
		switch err {
		case entity.ErrInvalidTransition, entity.ErrInsufficientBalance, entity.ErrBalanceExpired, entity.ErrNotFound:
			// Domain outcome, already disambiguated.
		default:
			r.log.Error("Failed to mark booking done",
				zap.Error(err),
				zap.String("booking_id", id.String()),
				zap.String("balance_id", balanceID.String()),
			)
		}
		return err
	}

	return nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id, slotID uuid.UUID, canceledBy uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		flip := `
			UPDATE bookings
			SET status = $2, canceled_by = $3, updated_at = NOW()
			WHERE id = $1 AND status IN ($4, $5)
		`

		result, err := tx.Exec(ctx, flip, id,
			entity.BookingStatusCanceled,
			canceledBy,
			entity.BookingStatusPending,
			entity.BookingStatusConfirmed,
		)
		if err != nil {
			return fmt.Errorf("cancel booking %s: %w", id.String(), err)
		}
		if result.RowsAffected() == 0 {
			return r.transitionFailure(ctx, id)
		}

		release := `
			UPDATE availability_slots
			SET is_bookable = true, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		if _, err := tx.Exec(ctx, release, slotID); err != nil {
			return fmt.Errorf("release slot %s: %w", slotID.String(), err)
		}

		return nil
	})

	if err != nil {
		if err != entity.ErrInvalidTransition && err != entity.ErrNotFound {
			r.log.Error("Failed to cancel booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
		}
		return err
	}

	return nil
}

// transitionFailure tells a terminal-state booking apart from a missing one.
func (r *bookingRepository) transitionFailure(ctx context.Context, id uuid.UUID) error {
	var status entity.BookingStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
	if err == pgx.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect booking %s: %w", id.String(), err)
	}
	return entity.ErrInvalidTransition
}

// consumeFailure tells an expired balance apart from an insufficient one.
func (r *bookingRepository) consumeFailure(ctx context.Context, tx pgx.Tx, balanceID uuid.UUID, minutes int, now time.Time) error {
	var remaining int
	var expiresAt *time.Time
	err := tx.QueryRow(ctx,
		`SELECT remaining_minutes, expires_at FROM ticket_balances WHERE id = $1 AND deleted_at IS NULL`,
		balanceID,
	).Scan(&remaining, &expiresAt)

	if err == pgx.ErrNoRows {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect balance %s: %w", balanceID.String(), err)
	}

	if expiresAt != nil && expiresAt.Before(now) {
		return entity.ErrBalanceExpired
	}
	return entity.ErrInsufficientBalance
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.StudentID,
		&booking.SlotID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TicketBalanceID,
		&booking.CanceledBy,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByTeacherID(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE teacher_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, teacherID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by teacher ID",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return nil, fmt.Errorf("find bookings for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) CountByTeacherID(ctx context.Context, teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by teacher ID",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return 0, fmt.Errorf("count bookings for teacher %s: %w", teacherID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByGuardianID(ctx context.Context, guardianID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.teacher_id, b.student_id, b.slot_id, b.start_time, b.end_time,
		       b.status, b.ticket_balance_id, b.canceled_by, b.created_at, b.updated_at
		FROM bookings b
		JOIN students s ON s.id = b.student_id
		WHERE s.guardian_id = $1
		ORDER BY b.start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, guardianID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by guardian ID",
			zap.Error(err),
			zap.String("guardian_id", guardianID.String()),
		)
		return nil, fmt.Errorf("find bookings for guardian %s: %w", guardianID.String(), err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) CountByGuardianID(ctx context.Context, guardianID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN students s ON s.id = b.student_id
		WHERE s.guardian_id = $1
	`

	var count int64
	err := r.db.QueryRow(ctx, query, guardianID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by guardian ID",
			zap.Error(err),
			zap.String("guardian_id", guardianID.String()),
		)
		return 0, fmt.Errorf("count bookings for guardian %s: %w", guardianID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE ($1 = '' OR status = $1)`, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.TeacherID,
			&booking.StudentID,
			&booking.SlotID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.TicketBalanceID,
			&booking.CanceledBy,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
