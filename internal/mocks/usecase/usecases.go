// Package usecase provides hand-written testify mocks for the usecase
// interfaces, used by handler tests.
package usecase

import (
	"context"

	"stride/internal/domain/entity"
	"stride/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockHabitUsecase is a testify mock of usecase.HabitUsecase.
type MockHabitUsecase struct {
	mock.Mock
}

func (m *MockHabitUsecase) AddHabit(ctx context.Context, ownerID uuid.UUID, input *usecase.AddHabitInput) (*entity.Habit, error) {
	args := m.Called(ctx, ownerID, input)
	if habit, ok := args.Get(0).(*entity.Habit); ok {
		return habit, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHabitUsecase) LogFailure(ctx context.Context, ownerID, habitID uuid.UUID) (*entity.Habit, error) {
	args := m.Called(ctx, ownerID, habitID)
	if habit, ok := args.Get(0).(*entity.Habit); ok {
		return habit, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHabitUsecase) LogAlmostRelapse(ctx context.Context, ownerID, habitID uuid.UUID, note string) (int, error) {
	args := m.Called(ctx, ownerID, habitID, note)

	return args.Int(0), args.Error(1)
}

func (m *MockHabitUsecase) DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	args := m.Called(ctx, ownerID, habitID)

	return args.Error(0)
}

func (m *MockHabitUsecase) ShareHabit(ctx context.Context, receiverID uuid.UUID, code string) error {
	args := m.Called(ctx, receiverID, code)

	return args.Error(0)
}

func (m *MockHabitUsecase) GetMyHabits(ctx context.Context, ownerID uuid.UUID) (*usecase.MyHabitsOutput, error) {
	args := m.Called(ctx, ownerID)
	if out, ok := args.Get(0).(*usecase.MyHabitsOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHabitUsecase) GetSharedHabits(ctx context.Context, viewerID uuid.UUID) ([]*usecase.SharedHabitView, error) {
	args := m.Called(ctx, viewerID)
	if views, ok := args.Get(0).([]*usecase.SharedHabitView); ok {
		return views, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockHabitUsecase) ShareCodeQR(ctx context.Context, ownerID, habitID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, ownerID, habitID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockUserUsecase is a testify mock of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.RegisterOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.LoginOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}
