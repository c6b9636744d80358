package progress

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/keyvalue"
	"github.com/2beens/fittracker/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTracker wires a tracker and a catalog over a shared in-memory
// store, with an injectable clock. The returned time pointer can be
// moved to simulate the passage of days.
func newTestTracker(t *testing.T) (*Tracker, *workouts.Catalog, keyvalue.Store, *time.Time) {
	t.Helper()

	store := keyvalue.NewMemoryStore()
	catalog := workouts.NewCatalog(store)
	tracker := NewTracker(store, catalog)

	// 2025-06-02 is a monday, upper body day
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	nowFunc := func() time.Time {
		return now
	}
	catalog.NowFunc = nowFunc
	tracker.NowFunc = nowFunc

	return tracker, catalog, store, &now
}

func TestTracker_MarkComplete(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))

	completed, err := tracker.IsCompleted(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = tracker.IsCompleted(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, completed)

	history, err := tracker.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-06-02", history[0].Date)
	assert.Equal(t, 1, history[0].Day)
	assert.Equal(t, 0, history[0].ExerciseIndex)
	assert.Equal(t, "Push-ups", history[0].ExerciseName)
	assert.Equal(t, 50, history[0].Calories)
	assert.True(t, history[0].Completed)
}

func TestTracker_MarkComplete_Repeated(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	// idempotent on the completion map, but every call still lands
	// in the history log - it records actions, not state changes
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))

	prog, err := tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.Completed)

	history, err := tracker.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	total, err := tracker.TotalWorkoutsCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestTracker_MarkComplete_UnknownExercise(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	assert.ErrorIs(t, tracker.MarkComplete(ctx, 1, 99), workouts.ErrExerciseNotFound)
	assert.ErrorIs(t, tracker.MarkComplete(ctx, 9, 0), workouts.ErrPlanNotFound)

	// nothing was persisted for the failed commands
	history, err := tracker.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	prog, err := tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, prog.Completed)
}

func TestTracker_ToggleComplete(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	require.NoError(t, tracker.ToggleComplete(ctx, 1, 2))
	completed, err := tracker.IsCompleted(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, completed)

	// toggling twice lands back on the initial state
	require.NoError(t, tracker.ToggleComplete(ctx, 1, 2))
	completed, err = tracker.IsCompleted(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, completed)

	// both actions are in the log, with the resulting states
	history, err := tracker.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Completed)
	assert.False(t, history[1].Completed)
	assert.Equal(t, "Bench Press", history[0].ExerciseName)
}

func TestTracker_TodayProgress(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	prog, err := tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, &TodayProgress{Completed: 0, Total: 6, Calories: 0, Percentage: 0}, prog)

	// push-ups (50 kcal) and bench press (80 kcal)
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.MarkComplete(ctx, 1, 2))

	prog, err = tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, &TodayProgress{Completed: 2, Total: 6, Calories: 130, Percentage: 33}, prog)
}

func TestTracker_TodayProgress_IgnoresOtherDays(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))

	// next day, monday's completion does not leak into tuesday
	*now = now.AddDate(0, 0, 1)
	prog, err := tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, prog.Completed)
	assert.Equal(t, 6, prog.Total) // lower body, also 6 exercises
	assert.Equal(t, 0, prog.Calories)
}

func TestTracker_WeeklyProgress(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	// monday: push-ups (50) and bench press (80)
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.MarkComplete(ctx, 1, 2))

	// wednesday: running (300)
	*now = time.Date(2025, 6, 4, 18, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, 3, 0))

	prog, err := tracker.WeeklyProgress(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, prog.Completed)
	assert.Equal(t, 430, prog.Calories)
	assert.Equal(t, 2, prog.ActiveDays)
	// 3 out of 38*7 possible completions rounds down to 1%
	assert.Equal(t, 1, prog.CompletionRate)

	require.Len(t, prog.DayStats, 7)
	assert.Equal(t, DayStats{Completed: 2, Calories: 130}, prog.DayStats["2025-06-02"])
	assert.Equal(t, DayStats{Completed: 1, Calories: 300}, prog.DayStats["2025-06-04"])
	assert.Equal(t, DayStats{}, prog.DayStats["2025-06-06"])
}

func TestTracker_WeeklyProgress_Empty(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	prog, err := tracker.WeeklyProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, prog.Completed)
	assert.Equal(t, 0, prog.ActiveDays)
	assert.Equal(t, 0, prog.CompletionRate)
	assert.Len(t, prog.DayStats, 7)
}

func TestTracker_WeeklyProgress_ActiveDaysCapped(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	// one completion every day of the week
	weekStart := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) // sunday
	for i := 0; i < 7; i++ {
		*now = weekStart.AddDate(0, 0, i)
		day := workouts.DayNumber(*now)
		require.NoError(t, tracker.MarkComplete(ctx, day, 0))
	}

	prog, err := tracker.WeeklyProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, prog.ActiveDays)
	assert.Equal(t, 7, prog.Completed)
}

func TestTracker_Streak(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	streak, err := tracker.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)

	// complete something on saturday, sunday and monday
	start := time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC) // saturday
	for i := 0; i < 3; i++ {
		*now = start.AddDate(0, 0, i)
		day := workouts.DayNumber(*now)
		require.NoError(t, tracker.MarkComplete(ctx, day, 0))
	}

	streak, err = tracker.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	// the next day, before any workout, the streak resets to zero -
	// it is a run through today, not the longest run ever
	*now = now.AddDate(0, 0, 1)
	streak, err = tracker.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestTracker_Streak_BrokenRun(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	// a completion three days ago, then a gap, then today
	*now = time.Date(2025, 5, 30, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, workouts.DayNumber(*now), 0))

	*now = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))

	streak, err := tracker.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestTracker_LegacyToggledOffState(t *testing.T) {
	ctx := context.Background()
	tracker, _, store, _ := newTestTracker(t)

	// older clients wrote "d-i": false on toggle-off instead of
	// removing the entry; such days carry no real completions
	legacyState := `{"2025-06-01":{"7-0":false},"2025-06-02":{"1-0":false,"1-2":true}}`
	require.NoError(t, store.Set(ctx, "completedExercises", legacyState))

	prog, err := tracker.TodayProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.Completed)
	assert.Equal(t, 80, prog.Calories) // bench press only

	weekly, err := tracker.WeeklyProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, weekly.Completed)
	assert.Equal(t, 1, weekly.ActiveDays)

	// sunday holds only a toggled-off entry, so the run is just monday
	streak, err := tracker.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestTracker_ExerciseFrequencies(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, now := newTestTracker(t)

	// an old completion, outside the 7 day window
	*now = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, workouts.DayNumber(*now), 0))

	// recent completions: burpees show up in two different plans
	// (cardio and full body) and must be counted as one exercise
	*now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, 3, 4)) // burpees
	require.NoError(t, tracker.MarkComplete(ctx, 5, 2)) // burpees again

	*now = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0)) // push-ups

	frequencies, err := tracker.ExerciseFrequencies(ctx, 7)
	require.NoError(t, err)

	require.Len(t, frequencies, 2)
	assert.Equal(t, ExerciseFrequency{Name: "Burpees", Count: 2}, frequencies[0])
	assert.Equal(t, ExerciseFrequency{Name: "Push-ups", Count: 1}, frequencies[1])
}

func TestTracker_ExerciseFrequencies_SkipsToggledOff(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.ToggleComplete(ctx, 1, 1)) // on
	require.NoError(t, tracker.ToggleComplete(ctx, 1, 1)) // off again

	frequencies, err := tracker.ExerciseFrequencies(ctx, 0) // default window
	require.NoError(t, err)

	// pull-ups: one completed entry and one toggled-off entry,
	// only completions count
	require.Len(t, frequencies, 2)
	assert.Equal(t, ExerciseFrequency{Name: "Push-ups", Count: 1}, frequencies[0])
	assert.Equal(t, ExerciseFrequency{Name: "Pull-ups", Count: 1}, frequencies[1])
}

func TestTracker_SuggestedWorkouts(t *testing.T) {
	ctx := context.Background()
	tracker, catalog, _, _ := newTestTracker(t)

	// default goal is strength: upper body, lower body and full body,
	// the core plan carries its own category and stays out
	suggested, err := tracker.SuggestedWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 3)
	assert.Equal(t, "Upper Body", suggested[0].Name)
	assert.Equal(t, "Lower Body", suggested[1].Name)
	assert.Equal(t, "Full Body", suggested[2].Name)
	for _, plan := range suggested {
		assert.Equal(t, workouts.CategoryStrength, plan.Category)
	}

	// cardio matches exactly one plan
	require.NoError(t, catalog.SetGoal(ctx, workouts.GoalCardio))
	suggested, err = tracker.SuggestedWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	assert.Equal(t, "Cardio", suggested[0].Name)

	require.NoError(t, catalog.SetGoal(ctx, workouts.GoalFlexibility))
	suggested, err = tracker.SuggestedWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	assert.Equal(t, "Flexibility/Yoga", suggested[0].Name)
}

func TestTracker_SuggestedWorkouts_UnknownGoalFallback(t *testing.T) {
	ctx := context.Background()
	tracker, _, store, _ := newTestTracker(t)

	// a goal value from an older schema version, persisted directly
	require.NoError(t, store.Set(ctx, "userGoal", "get-swole"))

	suggested, err := tracker.SuggestedWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, suggested, 3)
	assert.Equal(t, "Upper Body", suggested[0].Name)
	assert.Equal(t, "Lower Body", suggested[1].Name)
	assert.Equal(t, "Cardio", suggested[2].Name)
}

func TestTracker_TotalWorkoutsCompleted(t *testing.T) {
	ctx := context.Background()
	tracker, _, _, _ := newTestTracker(t)

	total, err := tracker.TotalWorkoutsCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.MarkComplete(ctx, 1, 0))
	require.NoError(t, tracker.ToggleComplete(ctx, 1, 1)) // on
	require.NoError(t, tracker.ToggleComplete(ctx, 1, 1)) // off

	total, err = tracker.TotalWorkoutsCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestTracker_MalformedPersistedState(t *testing.T) {
	ctx := context.Background()
	tracker, _, store, _ := newTestTracker(t)

	require.NoError(t, store.Set(ctx, "completedExercises", `{"broken`))
	_, err := tracker.TodayProgress(ctx)
	assert.ErrorContains(t, err, "unmarshal persisted completions")

	require.NoError(t, store.Set(ctx, "workoutHistory", `not json`))
	_, err = tracker.History(ctx)
	assert.ErrorContains(t, err, "unmarshal persisted history")
}
