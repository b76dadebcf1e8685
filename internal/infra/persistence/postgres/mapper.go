package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"stride/internal/domain/entity"
	"stride/internal/infra/persistence/model"
)

// Mapper helpers converting between domain entities and persistence models.
// Repositories never leak models past this boundary.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	habits := make([]*entity.Habit, 0, len(data.Habits))
	for _, h := range data.Habits {
		habits = append(habits, toHabitDomain(h))
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Habits:       habits,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	habits := make([]*model.HabitModel, 0, len(data.Habits))
	for _, h := range data.Habits {
		habits = append(habits, fromHabitDomain(data.ID, h))
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		Habits:       habits,
	}
}

func toHabitDomain(data *model.HabitModel) *entity.Habit {
	if data == nil {
		return nil
	}

	sharedWith := make([]uuid.UUID, 0, len(data.Shares))
	for _, share := range data.Shares {
		sharedWith = append(sharedWith, share.UserID)
	}

	return &entity.Habit{
		ID:              data.ID,
		Name:            data.Name,
		StartDate:       data.StartDate,
		LastFailureDate: data.LastFailureDate,
		History:         []time.Time(data.History),
		AlmostRelapses:  []entity.AlmostRelapse(data.AlmostRelapses),
		ShareCode:       data.ShareCode,
		SharedWith:      sharedWith,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromHabitDomain(ownerID uuid.UUID, data *entity.Habit) *model.HabitModel {
	if data == nil {
		return nil
	}

	shares := make([]*model.HabitShareModel, 0, len(data.SharedWith))
	for _, userID := range data.SharedWith {
		shares = append(shares, &model.HabitShareModel{
			HabitID: data.ID,
			UserID:  userID,
		})
	}

	return &model.HabitModel{
		ID:              data.ID,
		UserID:          ownerID,
		Name:            data.Name,
		StartDate:       data.StartDate,
		LastFailureDate: data.LastFailureDate,
		History:         datatypes.JSONSlice[time.Time](data.History),
		AlmostRelapses:  datatypes.JSONSlice[entity.AlmostRelapse](data.AlmostRelapses),
		ShareCode:       data.ShareCode,
		Shares:          shares,
	}
}
