package postgres

import (
	"context"

	"stride/internal/domain/entity"
	domainerrors "stride/internal/domain/errors"
	"stride/internal/domain/repository"
	"stride/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// habitRepository implements repository.HabitRepository using GORM.
// Every mutation is scoped to (owner id, habit id), so concurrent writes to
// different habits of the same user never clobber each other.
type habitRepository struct {
	db *gorm.DB
}

// NewHabitRepository is the constructor for habitRepository.
func NewHabitRepository(db *gorm.DB) repository.HabitRepository {
	return &habitRepository{db: db}
}

// AppendHabit adds a new habit row to the end of the owner's collection.
// Insertion order is carried by created_at, so appending is just creating.
func (repo *habitRepository) AppendHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error {
	habitM := fromHabitDomain(ownerID, habit)

	if err := repo.db.WithContext(ctx).Create(habitM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isUniqueConstraintViolation(err) {
			// Unique index on share_code is the backstop behind the
			// generator's best-effort uniqueness.
			return repository.ErrShareExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append habit")
	}

	habit.CreatedAt = habitM.CreatedAt
	habit.UpdatedAt = habitM.UpdatedAt

	return nil
}

// UpdateHabit persists the mutable fields of a single habit with an update
// scoped to (owner, habit). Sibling habits of the same user stay untouched.
func (repo *habitRepository) UpdateHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error {
	habitM := fromHabitDomain(ownerID, habit)

	res := repo.db.WithContext(ctx).
		Model(&model.HabitModel{}).
		Where("id = ? AND user_id = ?", habit.ID, ownerID).
		Select("last_failure_date", "history", "almost_relapses").
		Updates(habitM)

	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to update habit")
	}
	if res.RowsAffected == 0 {
		return repository.ErrHabitNotFound
	}

	return nil
}

// DeleteHabit removes the habit row. The habit_shares FK cascades, so any
// outstanding grants disappear with it and shared views stop seeing it.
func (repo *habitRepository) DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, ownerID).
		Delete(&model.HabitModel{})

	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to delete habit")
	}
	if res.RowsAffected == 0 {
		return repository.ErrHabitNotFound
	}

	return nil
}

// FindOwnerByShareCode resolves a share code to the owning user, habits
// loaded, via the unique share_code index instead of a full user scan.
func (repo *habitRepository) FindOwnerByShareCode(ctx context.Context, code string) (*entity.User, error) {
	var habitM model.HabitModel
	err := repo.db.WithContext(ctx).
		Select("user_id").
		Where("share_code = ?", code).
		First(&habitM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShareCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to look up share code")
	}

	var userM model.UserModel
	err = repo.db.WithContext(ctx).
		Preload("Habits", orderHabits).
		Preload("Habits.Shares", orderShares).
		Where("id = ?", habitM.UserID).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShareCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to load share code owner")
	}

	return toUserDomain(&userM), nil
}

// AddShare grants the receiver read access. The composite primary key turns
// a duplicate grant into ErrShareExists instead of a second row.
func (repo *habitRepository) AddShare(ctx context.Context, habitID, receiverID uuid.UUID) error {
	share := &model.HabitShareModel{
		HabitID: habitID,
		UserID:  receiverID,
	}

	if err := repo.db.WithContext(ctx).Create(share).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrShareExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrHabitNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add share")
	}

	return nil
}

// FindOwnersSharingWith returns every user owning at least one habit shared
// with the viewer. The habit_shares receiver index drives the query; the
// service still re-checks membership by value on each habit.
func (repo *habitRepository) FindOwnersSharingWith(ctx context.Context, viewerID uuid.UUID) ([]*entity.User, error) {
	ownerIDs := repo.db.
		Model(&model.HabitShareModel{}).
		Select("habits.user_id").
		Joins("JOIN habits ON habits.id = habit_shares.habit_id").
		Where("habit_shares.user_id = ?", viewerID)

	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id IN (?)", ownerIDs).
		Order("created_at ASC").
		Preload("Habits", orderHabits).
		Preload("Habits.Shares", orderShares).
		Find(&userMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owners sharing with viewer")
	}

	owners := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		owners = append(owners, toUserDomain(userM))
	}

	return owners, nil
}
