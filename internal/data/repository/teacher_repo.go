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

type TeacherRepository interface {
	Create(ctx context.Context, profile *entity.TeacherProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TeacherProfile, error)
	Update(ctx context.Context, profile *entity.TeacherProfile) error

	// Guardian-teacher assignment. A guardian only sees availability of
	// teachers assigned to them.
	AssignGuardian(ctx context.Context, teacherUserID, guardianID uuid.UUID) error
	ListAssignedTeacherIDs(ctx context.Context, guardianID uuid.UUID) ([]uuid.UUID, error)
	IsAssigned(ctx context.Context, teacherUserID, guardianID uuid.UUID) (bool, error)
}

type teacherRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTeacherRepository(db database.PgxIface, log *zap.Logger) TeacherRepository {
	return &teacherRepository{
		db:  db,
		log: log.With(zap.String("repository", "teacher")),
	}
}

func (r *teacherRepository) Create(ctx context.Context, profile *entity.TeacherProfile) error {
	query := `
		INSERT INTO teacher_profiles (id, user_id, subjects, grades, plan, stripe_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Subjects,
		profile.Grades,
		profile.Plan,
		profile.StripeAccountID,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create teacher profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("create teacher profile for user %s: %w", profile.UserID.String(), err)
	}

	return nil
}

func (r *teacherRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TeacherProfile, error) {
	query := `
		SELECT id, user_id, subjects, grades, plan, stripe_account_id, created_at, updated_at, deleted_at
		FROM teacher_profiles
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	var profile entity.TeacherProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Subjects,
		&profile.Grades,
		&profile.Plan,
		&profile.StripeAccountID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find teacher profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find teacher profile for user %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *teacherRepository) Update(ctx context.Context, profile *entity.TeacherProfile) error {
	query := `
		UPDATE teacher_profiles
		SET subjects = $2, grades = $3, plan = $4, stripe_account_id = $5, updated_at = $6
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.Subjects,
		profile.Grades,
		profile.Plan,
		profile.StripeAccountID,
		profile.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update teacher profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("update teacher profile for user %s: %w", profile.UserID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("teacher profile for user %s not found", profile.UserID.String())
	}

	return nil
}

func (r *teacherRepository) AssignGuardian(ctx context.Context, teacherUserID, guardianID uuid.UUID) error {
	query := `
		INSERT INTO assigned_teachers (teacher_id, guardian_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (teacher_id, guardian_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, teacherUserID, guardianID)
	if err != nil {
		r.log.Error("Failed to assign teacher to guardian",
			zap.Error(err),
			zap.String("teacher_id", teacherUserID.String()),
			zap.String("guardian_id", guardianID.String()),
		)
		return fmt.Errorf("assign teacher %s to guardian %s: %w",
			teacherUserID.String(), guardianID.String(), err)
	}

	return nil
}

func (r *teacherRepository) ListAssignedTeacherIDs(ctx context.Context, guardianID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT teacher_id
		FROM assigned_teachers
		WHERE guardian_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, guardianID)
	if err != nil {
		r.log.Error("Failed to list assigned teachers",
			zap.Error(err),
			zap.String("guardian_id", guardianID.String()),
		)
		return nil, fmt.Errorf("list assigned teachers for guardian %s: %w", guardianID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan teacher id", zap.Error(err))
			return nil, fmt.Errorf("scan teacher id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *teacherRepository) IsAssigned(ctx context.Context, teacherUserID, guardianID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM assigned_teachers WHERE teacher_id = $1 AND guardian_id = $2)`

	var assigned bool
	err := r.db.QueryRow(ctx, query, teacherUserID, guardianID).Scan(&assigned)
	if err != nil {
		r.log.Error("Failed to check teacher assignment",
			zap.Error(err),
			zap.String("teacher_id", teacherUserID.String()),
			zap.String("guardian_id", guardianID.String()),
		)
		return false, fmt.Errorf("check assignment: %w", err)
	}

	return assigned, nil
}
