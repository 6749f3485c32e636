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

type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	FindByGuardianID(ctx context.Context, guardianID uuid.UUID) ([]*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
}

type studentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStudentRepository(db database.PgxIface, log *zap.Logger) StudentRepository {
	return &studentRepository{
		db:  db,
		log: log.With(zap.String("repository", "student")),
	}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	query := `
		INSERT INTO students (id, guardian_id, name, grade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		student.ID,
		student.GuardianID,
		student.Name,
		student.Grade,
		student.CreatedAt,
		student.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create student",
			zap.Error(err),
			zap.String("guardian_id", student.GuardianID.String()),
		)
		return fmt.Errorf("create student for guardian %s: %w", student.GuardianID.String(), err)
	}

	return nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	query := `
		SELECT id, guardian_id, name, grade, created_at, updated_at, deleted_at
		FROM students
		WHERE id = $1 AND deleted_at IS NULL
	`

	var student entity.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.GuardianID,
		&student.Name,
		&student.Grade,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find student by ID",
			zap.Error(err),
			zap.String("student_id", id.String()),
		)
		return nil, fmt.Errorf("find student by ID %s: %w", id.String(), err)
	}

	return &student, nil
}

func (r *studentRepository) FindByGuardianID(ctx context.Context, guardianID uuid.UUID) ([]*entity.Student, error) {
	query := `
		SELECT id, guardian_id, name, grade, created_at, updated_at, deleted_at
		FROM students
		WHERE guardian_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, guardianID)
	if err != nil {
		r.log.Error("Failed to find students by guardian ID",
			zap.Error(err),
			zap.String("guardian_id", guardianID.String()),
		)
		return nil, fmt.Errorf("find students for guardian %s: %w", guardianID.String(), err)
	}
	defer rows.Close()

	var students []*entity.Student
	for rows.Next() {
		var student entity.Student
		err := rows.Scan(
			&student.ID,
			&student.GuardianID,
			&student.Name,
			&student.Grade,
			&student.CreatedAt,
			&student.UpdatedAt,
			&student.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan student row", zap.Error(err))
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		students = append(students, &student)
	}

	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	query := `
		UPDATE students
		SET name = $2, grade = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		student.ID,
		student.Name,
		student.Grade,
		student.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update student",
			zap.Error(err),
			zap.String("student_id", student.ID.String()),
		)
		return fmt.Errorf("update student %s: %w", student.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("student %s not found", student.ID.String())
	}

	return nil
}
