// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"stride/internal/domain/entity"

	"github.com/google/uuid"
)

// HabitUsecase defines the habit tracking and sharing operations. Every
// operation is keyed by the authenticated caller's user id; the delivery
// layer never passes anything else through.
type HabitUsecase interface {
	// AddHabit creates a new habit for the owner and returns it raw,
	// without derived fields.
	AddHabit(ctx context.Context, ownerID uuid.UUID, input *AddHabitInput) (*entity.Habit, error)

	// LogFailure records a relapse: the streak baseline resets, the failure
	// joins the audit history, and pending urges are cleared.
	LogFailure(ctx context.Context, ownerID, habitID uuid.UUID) (*entity.Habit, error)

	// LogAlmostRelapse records an urge the user resisted and returns the
	// new total count of urges since the last failure.
	LogAlmostRelapse(ctx context.Context, ownerID, habitID uuid.UUID, note string) (int, error)

	// DeleteHabit removes the habit outright. Shares pointing at it vanish
	// from viewers' lists; there is no tombstone.
	DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID) error

	// ShareHabit grants the caller read access to whichever habit carries
	// the given share code, across all users.
	ShareHabit(ctx context.Context, receiverID uuid.UUID, code string) error

	// GetMyHabits returns the owner's habits enriched with derived fields:
	// streak days, urge counts, and resolved viewer names.
	GetMyHabits(ctx context.Context, ownerID uuid.UUID) (*MyHabitsOutput, error)

	// GetSharedHabits returns the summaries of every habit other users
	// share with the viewer.
	GetSharedHabits(ctx context.Context, viewerID uuid.UUID) ([]*SharedHabitView, error)

	// ShareCodeQR renders the habit's share code as a PNG QR image.
	ShareCodeQR(ctx context.Context, ownerID, habitID uuid.UUID) ([]byte, error)
}

// --- Input DTOs ---

// AddHabitInput defines the data required to create a habit.
type AddHabitInput struct {
	Name string `json:"name" validate:"required"`
}

// HabitIDInput carries a habit reference in a request body.
type HabitIDInput struct {
	HabitID string `json:"habitId" validate:"required,uuid"`
}

// LogAlmostRelapseInput defines the data for recording an urge.
type LogAlmostRelapseInput struct {
	HabitID string `json:"habitId" validate:"required,uuid"`
	Note    string `json:"note"`
}

// ShareHabitInput defines the data for establishing a sharing relationship.
type ShareHabitInput struct {
	Code string `json:"code" validate:"required"`
}

// --- Output DTOs ---

// OwnerSummary identifies the owner in the my-habits response.
type OwnerSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// HabitView is a habit enriched with its derived fields. Only owners ever
// see this shape.
type HabitView struct {
	ID                  uuid.UUID              `json:"id"`
	Name                string                 `json:"name"`
	StartDate           time.Time              `json:"startDate"`
	LastFailureDate     *time.Time             `json:"lastFailureDate"`
	History             []time.Time            `json:"history"`
	ShareCode           string                 `json:"shareCode"`
	SharedWith          []uuid.UUID            `json:"sharedWith"`
	StreakDays          int                    `json:"streakDays"`
	AlmostRelapsesCount int                    `json:"almostRelapsesCount"`
	AlmostRelapses      []entity.AlmostRelapse `json:"almostRelapses"`
	SharedWithNames     []string               `json:"sharedWithNames"`
}

// MyHabitsOutput is the response of GetMyHabits.
type MyHabitsOutput struct {
	User   OwnerSummary `json:"user"`
	Habits []*HabitView `json:"habits"`
}

// SharedHabitView is the reduced summary a viewer sees for a habit shared
// with them. No urge details or viewer lists leak to viewers.
type SharedHabitView struct {
	Owner               string     `json:"owner"`
	Name                string     `json:"name"`
	StartDate           time.Time  `json:"startDate"`
	LastFailureDate     *time.Time `json:"lastFailureDate"`
	StreakDays          int        `json:"streakDays"`
	AlmostRelapsesCount int        `json:"almostRelapsesCount"`
}
