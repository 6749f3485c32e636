package usecase

import (
	"context"
	"testing"
	"time"

	"lesson-booking/internal/data/entity"
	"lesson-booking/internal/data/repository"
	"lesson-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAvailabilityService_CreateSlot_RejectsInvertedRange(t *testing.T) {
	slots := &mockSlotRepo{}
	repo := &repository.Repository{Slot: slots}
	service := NewAvailabilityService(repo, zap.NewNop())

	start := time.Now().Add(24 * time.Hour)

	_, err := service.CreateSlot(context.Background(), uuid.New().String(), &request.CreateSlotRequest{
		SlotStart: start,
		SlotEnd:   start.Add(-30 * time.Minute),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot_start must be before slot_end")
	slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAvailabilityService_CreateSlot_PublishesBookable(t *testing.T) {
	slots := &mockSlotRepo{}
	repo := &repository.Repository{Slot: slots}
	service := NewAvailabilityService(repo, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	start := time.Now().Add(24 * time.Hour)

	slots.On("Create", ctx, mock.AnythingOfType("*entity.AvailabilitySlot")).Return(nil)

	resp, err := service.CreateSlot(ctx, teacherID.String(), &request.CreateSlotRequest{
		SlotStart: start,
		SlotEnd:   start.Add(60 * time.Minute),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsBookable)
	assert.Equal(t, teacherID.String(), resp.TeacherID)
}

func TestAvailabilityService_ListBookableSlots_OnlyAssignedTeachers(t *testing.T) {
	slots := &mockSlotRepo{}
	teachers := &mockTeacherRepo{}
	repo := &repository.Repository{Slot: slots, Teacher: teachers}
	service := NewAvailabilityService(repo, zap.NewNop())

	ctx := context.Background()
	guardianID := uuid.New()
	assignedTeacher := uuid.New()
	from := time.Now()
	to := from.AddDate(0, 0, 28)

	teachers.On("ListAssignedTeacherIDs", ctx, guardianID).Return([]uuid.UUID{assignedTeacher}, nil)
	slots.On("ListBookable", ctx, []uuid.UUID{assignedTeacher}, from, to).Return([]*entity.AvailabilitySlot{}, nil)

	_, err := service.ListBookableSlots(ctx, guardianID.String(), "", from, to)

	require.NoError(t, err)
	slots.AssertCalled(t, "ListBookable", ctx, []uuid.UUID{assignedTeacher}, from, to)
}

func TestAvailabilityService_ListBookableSlots_UnassignedTeacherFilter(t *testing.T) {
	slots := &mockSlotRepo{}
	teachers := &mockTeacherRepo{}
	repo := &repository.Repository{Slot: slots, Teacher: teachers}
	service := NewAvailabilityService(repo, zap.NewNop())

	ctx := context.Background()
	guardianID := uuid.New()
	from := time.Now()
	to := from.AddDate(0, 0, 7)

	teachers.On("ListAssignedTeacherIDs", ctx, guardianID).Return([]uuid.UUID{uuid.New()}, nil)

	// Narrowing to a teacher outside the assignment list is a denial,
	// not an empty result.
	_, err := service.ListBookableSlots(ctx, guardianID.String(), uuid.New().String(), from, to)

	assert.ErrorIs(t, err, entity.ErrOwnershipMismatch)
	slots.AssertNotCalled(t, "ListBookable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailabilityService_DeleteSlot_Propagates(t *testing.T) {
	slots := &mockSlotRepo{}
	repo := &repository.Repository{Slot: slots}
	service := NewAvailabilityService(repo, zap.NewNop())

	ctx := context.Background()
	teacherID := uuid.New()
	slotID := uuid.New()

	slots.On("DeleteBookable", ctx, slotID, teacherID).Return(entity.ErrNotFound)

	err := service.DeleteSlot(ctx, teacherID.String(), slotID.String())

	assert.ErrorIs(t, err, entity.ErrNotFound)
}
