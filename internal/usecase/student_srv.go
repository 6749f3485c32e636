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

type StudentService interface {
	CreateStudent(ctx context.Context, guardianID string, req *request.CreateStudentRequest) (*response.StudentResponse, error)
	ListStudents(ctx context.Context, guardianID string) ([]response.StudentResponse, error)
	ListBalances(ctx context.Context, guardianID, studentID string) ([]response.TicketBalanceResponse, error)
}

type studentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStudentService(repo *repository.Repository, log *zap.Logger) StudentService {
	return &studentService{
		repo: repo,
		log:  log.With(zap.String("service", "student")),
	}
}

func (s *studentService) CreateStudent(ctx context.Context, guardianID string, req *request.CreateStudentRequest) (*response.StudentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create student validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	now := time.Now()
	student := &entity.Student{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuardianID: guardianUUID,
		Name:       req.Name,
		Grade:      req.Grade,
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.log.Info("Student created",
		zap.String("student_id", student.ID.String()),
		zap.String("guardian_id", guardianID),
	)

	resp := response.StudentToResponse(student)
	return &resp, nil
}

func (s *studentService) ListStudents(ctx context.Context, guardianID string) ([]response.StudentResponse, error) {
	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	students, err := s.repo.Student.FindByGuardianID(ctx, guardianUUID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return response.StudentsToResponse(students), nil
}

// ListBalances returns every balance of one of the guardian's students,
// spent and expired included, for purchase history screens.
func (s *studentService) ListBalances(ctx context.Context, guardianID, studentID string) ([]response.TicketBalanceResponse, error) {
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
		return nil, fmt.Errorf("find student: %w", err)
	}
	if student == nil {
		return nil, entity.ErrNotFound
	}
	if student.GuardianID != guardianUUID {
		return nil, entity.ErrOwnershipMismatch
	}

	balances, err := s.repo.TicketBalance.ListByStudent(ctx, studentUUID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}

	return response.BalancesToResponse(balances), nil
}
