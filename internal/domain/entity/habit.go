package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// streakDay is the fixed window used for streak arithmetic. Streaks count
// whole 24-hour periods, not calendar days.
const streakDay = 24 * time.Hour

// Habit represents one tracked habit a user is trying to quit. It is owned
// exclusively by its User and never addressed outside of it.
type Habit struct {
	ID              uuid.UUID       // Unique within the owning user's habit collection.
	Name            string          // Display name, set at creation, never auto-modified.
	StartDate       time.Time       // Streak baseline until the first failure.
	LastFailureDate *time.Time      // Nil means the habit has never failed.
	History         []time.Time     // Append-only audit trail of all past failures.
	AlmostRelapses  []AlmostRelapse // Urges logged since the last failure.
	ShareCode       string          // Short uppercase code used to establish sharing.
	SharedWith      []uuid.UUID     // Users granted read access to the derived view.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AlmostRelapse records a near-miss: the user felt the urge but held on.
type AlmostRelapse struct {
	Date time.Time `json:"date"`
	Note string    `json:"note"`
}

// NewHabit creates a fresh habit starting its streak at now.
func NewHabit(name, shareCode string, now time.Time) *Habit {
	return &Habit{
		ID:             uuid.New(),
		Name:           name,
		StartDate:      now,
		History:        []time.Time{},
		AlmostRelapses: []AlmostRelapse{},
		ShareCode:      shareCode,
		SharedWith:     []uuid.UUID{},
	}
}

// StreakBase returns the date the current streak counts from: the last
// failure if the habit ever failed, otherwise the start date.
func (h *Habit) StreakBase() time.Time {
	if h.LastFailureDate != nil {
		return *h.LastFailureDate
	}

	return h.StartDate
}

// StreakDays computes the number of whole 24-hour periods elapsed between
// the streak base and now. It is always derived at call time, never stored.
// A zero base yields 0; a base in the future (clock skew) yields a negative
// value rather than an error.
func (h *Habit) StreakDays(now time.Time) int {
	base := h.StreakBase()
	if base.IsZero() {
		return 0
	}

	return int(math.Floor(float64(now.Sub(base)) / float64(streakDay)))
}

// LogFailure records a relapse at now: the streak baseline resets, the
// failure is appended to the audit history, and all pending urges are
// cleared. Urges that preceded an actual relapse carry no meaning anymore.
func (h *Habit) LogFailure(now time.Time) {
	failedAt := now
	h.LastFailureDate = &failedAt
	h.History = append(h.History, failedAt)
	h.AlmostRelapses = []AlmostRelapse{}
}

// LogAlmostRelapse appends an urge entry and returns the new total count.
// It never touches the failure history or the streak baseline.
func (h *Habit) LogAlmostRelapse(now time.Time, note string) int {
	h.AlmostRelapses = append(h.AlmostRelapses, AlmostRelapse{Date: now, Note: note})

	return len(h.AlmostRelapses)
}

// IsSharedWith reports whether the given user id already has read access.
// Ids are compared by value: distinct in-memory instances of the same
// logical id must match.
func (h *Habit) IsSharedWith(userID uuid.UUID) bool {
	for _, id := range h.SharedWith {
		if id == userID {
			return true
		}
	}

	return false
}

// ShareWith grants read access to the given user id. It returns false when
// the id is already present, making sharing idempotent-rejecting from the
// receiver's perspective.
func (h *Habit) ShareWith(userID uuid.UUID) bool {
	if h.IsSharedWith(userID) {
		return false
	}

	h.SharedWith = append(h.SharedWith, userID)

	return true
}
