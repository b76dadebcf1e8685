package repository

import (
	"context"
	"errors"

	"stride/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrHabitNotFound is returned when a habit id does not resolve within
	// the owning user's collection.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrShareCodeNotFound is returned when no habit carries the given
	// share code.
	ErrShareCodeNotFound = errors.New("share code not found")

	// ErrShareExists is returned when the receiver already has access to
	// the habit.
	ErrShareExists = errors.New("share already exists")
)

// HabitRepository defines persistence operations for the habits embedded in
// a user. Mutations are scoped to (user id, habit id) so a write never
// clobbers sibling habits of the same user.
type HabitRepository interface {
	// AppendHabit adds a new habit to the end of the owner's collection.
	AppendHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error

	// UpdateHabit persists the mutable fields of a single habit. Returns
	// ErrHabitNotFound when the (owner, habit) pair does not resolve.
	UpdateHabit(ctx context.Context, ownerID uuid.UUID, habit *entity.Habit) error

	// DeleteHabit removes the habit from the owner's collection. Any shares
	// pointing at it disappear with it; there is no tombstone.
	DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error

	// FindOwnerByShareCode returns the user owning the habit that carries
	// the given share code, with all of their habits loaded.
	FindOwnerByShareCode(ctx context.Context, code string) (*entity.User, error)

	// AddShare grants the receiver read access to the habit. Returns
	// ErrShareExists when the grant is already present.
	AddShare(ctx context.Context, habitID, receiverID uuid.UUID) error

	// FindOwnersSharingWith returns every user owning at least one habit
	// shared with the viewer, habits loaded, in stable order.
	FindOwnersSharingWith(ctx context.Context, viewerID uuid.UUID) ([]*entity.User, error)
}
