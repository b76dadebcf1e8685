package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabit_StreakDays_CountsWholePeriods(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	habit := NewHabit("no caffeine", "ABC123", now.Add(-3*24*time.Hour))

	assert.Equal(t, 3, habit.StreakDays(now))

	// One second short of the next full period still counts as 3.
	assert.Equal(t, 3, habit.StreakDays(now.Add(24*time.Hour-time.Second)))
	assert.Equal(t, 4, habit.StreakDays(now.Add(24*time.Hour)))
}

func TestHabit_StreakDays_FreshHabitIsZero(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	habit := NewHabit("no sugar", "ABC123", now)

	assert.Equal(t, 0, habit.StreakDays(now))
	assert.Equal(t, 0, habit.StreakDays(now.Add(23*time.Hour)))
}

func TestHabit_StreakDays_ZeroBase(t *testing.T) {
	habit := &Habit{}

	assert.Equal(t, 0, habit.StreakDays(time.Now()))
}

func TestHabit_StreakDays_FutureBaseGoesNegative(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	habit := NewHabit("no doomscrolling", "ABC123", now.Add(36*time.Hour))

	assert.Equal(t, -2, habit.StreakDays(now))
}

func TestHabit_LogFailure_ResetsStreakAndClearsUrges(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	habit := NewHabit("no smoking", "ABC123", start)

	threeDaysIn := start.Add(3 * 24 * time.Hour)
	assert.Equal(t, 1, habit.LogAlmostRelapse(start.Add(24*time.Hour), "party"))
	assert.Equal(t, 2, habit.LogAlmostRelapse(start.Add(48*time.Hour), ""))
	assert.Equal(t, 3, habit.StreakDays(threeDaysIn))

	habit.LogFailure(threeDaysIn)

	assert.Equal(t, 0, habit.StreakDays(threeDaysIn))
	require.NotNil(t, habit.LastFailureDate)
	assert.Equal(t, threeDaysIn, *habit.LastFailureDate)
	assert.Equal(t, []time.Time{threeDaysIn}, habit.History)
	assert.Empty(t, habit.AlmostRelapses)
}

func TestHabit_LogFailure_HistoryAccumulates(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	habit := NewHabit("no smoking", "ABC123", start)

	first := start.Add(24 * time.Hour)
	second := start.Add(72 * time.Hour)
	habit.LogFailure(first)
	habit.LogFailure(second)

	assert.Equal(t, []time.Time{first, second}, habit.History)
	assert.Equal(t, second, habit.StreakBase())
}

func TestHabit_ShareWith_RejectsDuplicates(t *testing.T) {
	habit := NewHabit("no smoking", "ABC123", time.Now())
	viewer := uuid.New()

	assert.True(t, habit.ShareWith(viewer))
	assert.False(t, habit.ShareWith(viewer))
	assert.Equal(t, []uuid.UUID{viewer}, habit.SharedWith)
}

func TestHabit_IsSharedWith_ComparesByValue(t *testing.T) {
	habit := NewHabit("no smoking", "ABC123", time.Now())
	viewer := uuid.New()
	habit.SharedWith = append(habit.SharedWith, viewer)

	// A distinct instance of the same logical id must match.
	same, err := uuid.Parse(viewer.String())
	require.NoError(t, err)
	assert.True(t, habit.IsSharedWith(same))
	assert.False(t, habit.IsSharedWith(uuid.New()))
}

func TestUser_SharedUserIDs_DeduplicatesAcrossHabits(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	first := NewHabit("first", "AAAAAA", time.Now())
	first.SharedWith = []uuid.UUID{alice, bob}
	second := NewHabit("second", "BBBBBB", time.Now())
	second.SharedWith = []uuid.UUID{bob}

	user := &User{Habits: []*Habit{first, second}}

	assert.Equal(t, []uuid.UUID{alice, bob}, user.SharedUserIDs())
}

func TestUser_RemoveHabit_PreservesOrder(t *testing.T) {
	first := NewHabit("first", "AAAAAA", time.Now())
	second := NewHabit("second", "BBBBBB", time.Now())
	third := NewHabit("third", "CCCCCC", time.Now())
	user := &User{Habits: []*Habit{first, second, third}}

	assert.True(t, user.RemoveHabit(second.ID))
	assert.False(t, user.RemoveHabit(second.ID))
	require.Len(t, user.Habits, 2)
	assert.Equal(t, "first", user.Habits[0].Name)
	assert.Equal(t, "third", user.Habits[1].Name)
}
