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

type AvailabilityService interface {
	// Teacher side
	CreateSlot(ctx context.Context, teacherID string, req *request.CreateSlotRequest) (*response.SlotResponse, error)
	DeleteSlot(ctx context.Context, teacherID, slotID string) error
	ListTeacherSlots(ctx context.Context, teacherID string, from, to time.Time) ([]response.SlotResponse, error)

	// Guardian side: only slots of teachers assigned to this guardian.
	ListBookableSlots(ctx context.Context, guardianID string, teacherID string, from, to time.Time) ([]response.SlotResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CreateSlot(ctx context.Context, teacherID string, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	if !req.SlotStart.Before(req.SlotEnd) {
		return nil, fmt.Errorf("invalid slot range: slot_start must be before slot_end")
	}

	now := time.Now()
	slot := &entity.AvailabilitySlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TeacherID:  teacherUUID,
		SlotStart:  req.SlotStart,
		SlotEnd:    req.SlotEnd,
		IsBookable: true,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("teacher_id", teacherID),
		)
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Slot published",
		zap.String("slot_id", slot.ID.String()),
		zap.String("teacher_id", teacherID),
		zap.Time("slot_start", slot.SlotStart),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

// DeleteSlot removes a slot only while it is still bookable; a reserved
// slot stays until its booking is resolved.
func (s *availabilityService) DeleteSlot(ctx context.Context, teacherID, slotID string) error {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	slotUUID, err := uuid.Parse(slotID)
	if err != nil {
		return fmt.Errorf("invalid slot ID format %s: %w", slotID, err)
	}

	if err := s.repo.Slot.DeleteBookable(ctx, slotUUID, teacherUUID); err != nil {
		s.log.Warn("Failed to delete slot",
			zap.Error(err),
			zap.String("slot_id", slotID),
			zap.String("teacher_id", teacherID),
		)
		return fmt.Errorf("delete slot: %w", err)
	}

	s.log.Info("Slot deleted",
		zap.String("slot_id", slotID),
		zap.String("teacher_id", teacherID),
	)

	return nil
}

func (s *availabilityService) ListTeacherSlots(ctx context.Context, teacherID string, from, to time.Time) ([]response.SlotResponse, error) {
	teacherUUID, err := uuid.Parse(teacherID)
	if err != nil {
		return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
	}

	slots, err := s.repo.Slot.ListByTeacher(ctx, teacherUUID, from, to)
	if err != nil {
		s.log.Error("Failed to list teacher slots",
			zap.Error(err),
			zap.String("teacher_id", teacherID),
		)
		return nil, fmt.Errorf("list teacher slots: %w", err)
	}

	return response.SlotsToResponse(slots), nil
}

func (s *availabilityService) ListBookableSlots(ctx context.Context, guardianID string, teacherID string, from, to time.Time) ([]response.SlotResponse, error) {
	guardianUUID, err := uuid.Parse(guardianID)
	if err != nil {
		return nil, fmt.Errorf("invalid guardian ID format %s: %w", guardianID, err)
	}

	assigned, err := s.repo.Teacher.ListAssignedTeacherIDs(ctx, guardianUUID)
	if err != nil {
		s.log.Error("Failed to list assigned teachers",
			zap.Error(err),
			zap.String("guardian_id", guardianID),
		)
		return nil, fmt.Errorf("list assigned teachers: %w", err)
	}

	teacherIDs := assigned
	if teacherID != "" {
		teacherUUID, err := uuid.Parse(teacherID)
		if err != nil {
			return nil, fmt.Errorf("invalid teacher ID format %s: %w", teacherID, err)
		}

		// Narrowing to one teacher still requires the assignment.
		found := false
		for _, id := range assigned {
			if id == teacherUUID {
				found = true
				break
			}
		}
		if !found {
			return nil, entity.ErrOwnershipMismatch
		}
		teacherIDs = []uuid.UUID{teacherUUID}
	}

	slots, err := s.repo.Slot.ListBookable(ctx, teacherIDs, from, to)
	if err != nil {
		s.log.Error("Failed to list bookable slots",
			zap.Error(err),
			zap.String("guardian_id", guardianID),
		)
		return nil, fmt.Errorf("list bookable slots: %w", err)
	}

	return response.SlotsToResponse(slots), nil
}
