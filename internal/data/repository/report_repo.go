package repository

import (
	"context"
	"errors"
	"fmt"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type ReportRepository interface {
	// Create fails when the booking already has a report; booking_id is
	// unique in the schema.
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Report, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Report, error)
	CountByTeacher(ctx context.Context, teacherID uuid.UUID) (int64, error)
	Update(ctx context.Context, report *entity.Report) error
	Publish(ctx context.Context, id, teacherID uuid.UUID) error
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

const reportColumns = `id, booking_id, teacher_id, content, summary,
	published, published_at, created_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, booking_id, teacher_id, content, summary, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.BookingID,
		report.TeacherID,
		report.Content,
		report.Summary,
		report.Published,
		report.CreatedAt,
		report.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("booking %s already has a report", report.BookingID.String())
		}
		r.log.Error("Failed to create report",
			zap.Error(err),
			zap.String("booking_id", report.BookingID.String()),
		)
		return fmt.Errorf("create report for booking %s: %w", report.BookingID.String(), err)
	}

	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1 AND deleted_at IS NULL`

	report, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find report by ID",
			zap.Error(err),
			zap.String("report_id", id.String()),
		)
		return nil, fmt.Errorf("find report by ID %s: %w", id.String(), err)
	}

	return report, nil
}

func (r *reportRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE booking_id = $1 AND deleted_at IS NULL`

	report, err := r.scanOne(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		r.log.Error("Failed to find report by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find report for booking %s: %w", bookingID.String(), err)
	}

	return report, nil
}

func (r *reportRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID, limit, offset int) ([]*entity.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE teacher_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, teacherID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reports",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return nil, fmt.Errorf("list reports for teacher %s: %w", teacherID.String(), err)
	}
	defer rows.Close()

	var reports []*entity.Report
	for rows.Next() {
		var report entity.Report
		err := rows.Scan(
			&report.ID,
			&report.BookingID,
			&report.TeacherID,
			&report.Content,
			&report.Summary,
			&report.Published,
			&report.PublishedAt,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan report row", zap.Error(err))
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, nil
}

func (r *reportRepository) CountByTeacher(ctx context.Context, teacherID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE teacher_id = $1 AND deleted_at IS NULL`,
		teacherID,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reports",
			zap.Error(err),
			zap.String("teacher_id", teacherID.String()),
		)
		return 0, fmt.Errorf("count reports for teacher %s: %w", teacherID.String(), err)
	}

	return count, nil
}

func (r *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE reports
		SET content = $2, summary = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		report.ID,
		report.Content,
		report.Summary,
		report.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update report",
			zap.Error(err),
			zap.String("report_id", report.ID.String()),
		)
		return fmt.Errorf("update report %s: %w", report.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s not found", report.ID.String())
	}

	return nil
}

func (r *reportRepository) Publish(ctx context.Context, id, teacherID uuid.UUID) error {
	query := `
		UPDATE reports
		SET published = true, published_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND teacher_id = $2 AND published = false AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, teacherID)
	if err != nil {
		r.log.Error("Failed to publish report",
			zap.Error(err),
			zap.String("report_id", id.String()),
		)
		return fmt.Errorf("publish report %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("report %s not found or already published", id.String())
	}

	return nil
}

func (r *reportRepository) scanOne(row pgx.Row) (*entity.Report, error) {
	var report entity.Report
	err := row.Scan(
		&report.ID,
		&report.BookingID,
		&report.TeacherID,
		&report.Content,
		&report.Summary,
		&report.Published,
		&report.PublishedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}
