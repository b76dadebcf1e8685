// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing one account. It owns
// an insertion-ordered collection of habits; habits are embedded in the
// user and have no independent lifecycle.
type User struct {
	ID           uuid.UUID // The global unique identifier for the user.
	Email        string    // Login identifier, unique across all users.
	Name         string    // Display name shown to sharing partners.
	PasswordHash string    // Credential hash, owned by the auth layer and never exposed.
	Habits       []*Habit  // Tracked habits, insertion order preserved.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HabitByID returns the habit with the given id, comparing ids by value.
func (u *User) HabitByID(habitID uuid.UUID) (*Habit, bool) {
	for _, h := range u.Habits {
		if h.ID == habitID {
			return h, true
		}
	}

	return nil, false
}

// HabitByShareCode returns the habit carrying the given share code.
func (u *User) HabitByShareCode(code string) (*Habit, bool) {
	for _, h := range u.Habits {
		if h.ShareCode == code {
			return h, true
		}
	}

	return nil, false
}

// AddHabit appends a habit to the collection, preserving insertion order.
func (u *User) AddHabit(h *Habit) {
	u.Habits = append(u.Habits, h)
}

// RemoveHabit deletes the habit with the given id from the collection and
// reports whether it was present. Ordering of the remaining habits is kept.
func (u *User) RemoveHabit(habitID uuid.UUID) bool {
	for i, h := range u.Habits {
		if h.ID == habitID {
			u.Habits = append(u.Habits[:i], u.Habits[i+1:]...)

			return true
		}
	}

	return false
}

// SharedUserIDs returns the deduplicated union of all user ids any of this
// user's habits are shared with, in first-seen order. The caller resolves
// the union to names with a single batched lookup.
func (u *User) SharedUserIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)

	for _, h := range u.Habits {
		for _, id := range h.SharedWith {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}
