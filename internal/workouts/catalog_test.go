package workouts

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/keyvalue"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(now time.Time) *Catalog {
	catalog := NewCatalog(keyvalue.NewMemoryStore())
	catalog.NowFunc = func() time.Time {
		return now
	}
	return catalog
}

func TestDayNumber(t *testing.T) {
	// 2025-06-02 is a monday
	assert.Equal(t, 1, DayNumber(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, DayNumber(time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)))
	// sunday maps to 7, not 0
	assert.Equal(t, 7, DayNumber(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
}

func TestCatalog_Plans_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	store := keyvalue.NewMemoryStore()
	catalog := NewCatalog(store)

	plans, err := catalog.Plans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 7)
	assert.Equal(t, "Upper Body", plans[0].Name)
	assert.Equal(t, CategoryStrength, plans[0].Category)
	assert.Equal(t, "Core", plans[3].Name)
	assert.Equal(t, CategoryCore, plans[3].Category)
	assert.Equal(t, "Rest Day", plans[6].Name)

	// the seed is persisted, subsequent reads come from the store
	raw, err := store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Contains(t, raw, "Upper Body")

	plansAgain, err := catalog.Plans(ctx)
	require.NoError(t, err)
	assert.Equal(t, plans, plansAgain)
}

func TestCatalog_PlanForDay(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	plan, err := catalog.PlanForDay(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cardio", plan.Name)
	assert.Equal(t, CategoryCardio, plan.Category)
	assert.Len(t, plan.Exercises, 5)

	_, err = catalog.PlanForDay(ctx, 8)
	assert.ErrorIs(t, err, ErrPlanNotFound)
	_, err = catalog.PlanForDay(ctx, 0)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestCatalog_PlanForToday(t *testing.T) {
	ctx := context.Background()

	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	plan, err := newTestCatalog(monday).PlanForToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Day)
	assert.Equal(t, "Upper Body", plan.Name)

	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	plan, err = newTestCatalog(sunday).PlanForToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, plan.Day)
	assert.Equal(t, "Rest Day", plan.Name)
}

func TestCatalog_TotalExercises(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	total, err := catalog.TotalExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, 38, total)
}

func TestCatalog_CustomPlans(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	plans, err := catalog.CustomPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)

	customPlan := WorkoutPlan{
		Name:     gofakeit.Name(),
		Category: CategoryStrength,
		Exercises: []Exercise{
			{Name: "Goblet Squats", Sets: 3, Reps: "12", Calories: 80},
		},
	}
	require.NoError(t, catalog.AddCustom(ctx, customPlan))

	plans, err = catalog.CustomPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, customPlan.Name, plans[0].Name)

	updatedPlan := customPlan
	updatedPlan.Name = gofakeit.Name()
	require.NoError(t, catalog.UpdateCustom(ctx, 0, updatedPlan))
	plans, err = catalog.CustomPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, updatedPlan.Name, plans[0].Name)

	assert.ErrorIs(t, catalog.UpdateCustom(ctx, 1, updatedPlan), ErrIndexOutOfRange)
	assert.ErrorIs(t, catalog.UpdateCustom(ctx, -1, updatedPlan), ErrIndexOutOfRange)
	assert.ErrorIs(t, catalog.DeleteCustom(ctx, 1), ErrIndexOutOfRange)

	require.NoError(t, catalog.DeleteCustom(ctx, 0))
	plans, err = catalog.CustomPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestCatalog_ClearCustom(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	for i := 0; i < 3; i++ {
		require.NoError(t, catalog.AddCustom(ctx, WorkoutPlan{Name: gofakeit.Name()}))
	}
	plans, err := catalog.CustomPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	require.NoError(t, catalog.ClearCustom(ctx))
	plans, err = catalog.CustomPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestCatalog_TodayPlan(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	days, err := catalog.TodayPlan(ctx)
	require.NoError(t, err)
	assert.Empty(t, days)

	require.NoError(t, catalog.AddToTodayPlan(ctx, 3))
	require.NoError(t, catalog.AddToTodayPlan(ctx, 1))
	// adding the same day again is a no-op
	require.NoError(t, catalog.AddToTodayPlan(ctx, 3))

	days, err = catalog.TodayPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, days)

	// non-existent plan day cannot be queued
	assert.ErrorIs(t, catalog.AddToTodayPlan(ctx, 9), ErrPlanNotFound)
}

func TestCatalog_Goal(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(keyvalue.NewMemoryStore())

	goal, err := catalog.Goal(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultGoal, goal)

	require.NoError(t, catalog.SetGoal(ctx, GoalCardio))
	goal, err = catalog.Goal(ctx)
	require.NoError(t, err)
	assert.Equal(t, GoalCardio, goal)

	assert.ErrorIs(t, catalog.SetGoal(ctx, Goal("bodybuilding")), ErrUnknownGoal)

	// the invalid goal was not persisted
	goal, err = catalog.Goal(ctx)
	require.NoError(t, err)
	assert.Equal(t, GoalCardio, goal)
}

func TestWorkoutPlan_ExerciseAt(t *testing.T) {
	plan := DefaultPlans()[0]

	exercise, err := plan.ExerciseAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Push-ups", exercise.Name)

	_, err = plan.ExerciseAt(len(plan.Exercises))
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	_, err = plan.ExerciseAt(-1)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
