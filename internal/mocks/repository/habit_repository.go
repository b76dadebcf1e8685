package repository

import (
	"context"

	"stride/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockHabitRepository is a testify mock of repository.HabitRepository.
type MockHabitRepository struct {
	mock.Mock
}

func (m *MockHabitRepository) AppendHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error {
	args := m.Called(ctx, ownerID, habit)

	return args.Error(0)
}

func (m *MockHabitRepository) UpdateHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error {
	args := m.Called(ctx, ownerID, habit)

	return args.Error(0)
}

func (m *MockHabitRepository) DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	args := m.Called(ctx, ownerID, habitID)

	return args.Error(0)
}

func (m *MockHabitRepository) FindOwnerByShareCode(ctx context.Context, code string) (*entity.User, error) {
	args := m.Called(ctx, code)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHabitRepository) AddShare(ctx context.Context, habitID, receiverID uuid.UUID) error {
	args := m.Called(ctx, habitID, receiverID)

	return args.Error(0)
}

func (m *MockHabitRepository) FindOwnersSharingWith(ctx context.Context, viewerID uuid.UUID) ([]*entity.User, error) {
	args := m.Called(ctx, viewerID)
	if owners, ok := args.Get(0).([]*entity.User); ok {
		return owners, args.Error(1)
	}

	return nil, args.Error(1)
}
