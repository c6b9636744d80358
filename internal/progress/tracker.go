package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fittracker/internal/keyvalue"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/internal/workouts"
	"github.com/2beens/fittracker/pkg"

	"go.opentelemetry.io/otel/attribute"
)

const (
	keyCompletedExercises = "completedExercises"
	keyWorkoutHistory     = "workoutHistory"

	// DefaultFrequencyWindowDays is the default lookback window for
	// the exercise frequency query
	DefaultFrequencyWindowDays = 7

	maxFrequencyResults = 10
	maxSuggestions      = 3
)

type planCatalog interface {
	Plans(ctx context.Context) ([]workouts.WorkoutPlan, error)
	PlanForDay(ctx context.Context, day int) (*workouts.WorkoutPlan, error)
	TotalExercises(ctx context.Context) (int, error)
	Goal(ctx context.Context) (workouts.Goal, error)
}

type TodayProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Calories   int `json:"calories"`
	Percentage int `json:"percentage"`
}

type DayStats struct {
	Completed int `json:"completed"`
	Calories  int `json:"calories"`
}

type WeeklyProgress struct {
	Completed      int                 `json:"completed"`
	Calories       int                 `json:"calories"`
	ActiveDays     int                 `json:"activeDays"`
	CompletionRate int                 `json:"completionRate"`
	DayStats       map[string]DayStats `json:"dayStats"`
}

type ExerciseFrequency struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tracker is the progress store: it owns the completion map and the
// workout history log behind the injected keyvalue store, and derives
// all progress statistics from them. Commands follow a read, compute,
// write-back sequence, so a single writer is assumed.
type Tracker struct {
	store   keyvalue.Store
	catalog planCatalog
	// ability to inject the clock (for unit and dev testing)
	NowFunc func() time.Time
}

func NewTracker(store keyvalue.Store, catalog planCatalog) *Tracker {
	return &Tracker{
		store:   store,
		catalog: catalog,
		NowFunc: time.Now,
	}
}

// MarkComplete sets the completion flag for the given exercise for
// today. Idempotent on the completion map, but every call appends a
// history entry - the log records actions, not state changes.
func (t *Tracker) MarkComplete(ctx context.Context, day, exerciseIndex int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.markComplete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day", day), attribute.Int("exercise_index", exerciseIndex))

	exercise, err := t.resolveExercise(ctx, day, exerciseIndex)
	if err != nil {
		return err
	}

	completions, err := t.completions(ctx)
	if err != nil {
		return err
	}

	dateKey := pkg.DateKey(t.NowFunc())
	completions.Mark(dateKey, ExerciseRef{Day: day, Index: exerciseIndex})
	if err := t.saveCompletions(ctx, completions); err != nil {
		return err
	}

	return t.appendHistory(ctx, HistoryEntry{
		Date:          dateKey,
		Day:           day,
		ExerciseIndex: exerciseIndex,
		ExerciseName:  exercise.Name,
		Calories:      exercise.Calories,
		Completed:     true,
		Timestamp:     t.NowFunc(),
	})
}

// ToggleComplete flips the completion flag for the given exercise for
// today and appends a history entry recording the resulting state
func (t *Tracker) ToggleComplete(ctx context.Context, day, exerciseIndex int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.toggleComplete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day", day), attribute.Int("exercise_index", exerciseIndex))

	exercise, err := t.resolveExercise(ctx, day, exerciseIndex)
	if err != nil {
		return err
	}

	completions, err := t.completions(ctx)
	if err != nil {
		return err
	}

	dateKey := pkg.DateKey(t.NowFunc())
	ref := ExerciseRef{Day: day, Index: exerciseIndex}

	nowCompleted := !completions.IsCompleted(dateKey, ref)
	if nowCompleted {
		completions.Mark(dateKey, ref)
	} else {
		completions.Unmark(dateKey, ref)
	}
	if err := t.saveCompletions(ctx, completions); err != nil {
		return err
	}

	return t.appendHistory(ctx, HistoryEntry{
		Date:          dateKey,
		Day:           day,
		ExerciseIndex: exerciseIndex,
		ExerciseName:  exercise.Name,
		Calories:      exercise.Calories,
		Completed:     nowCompleted,
		Timestamp:     t.NowFunc(),
	})
}

// IsCompleted reports whether the given exercise is marked done today
func (t *Tracker) IsCompleted(ctx context.Context, day, exerciseIndex int) (bool, error) {
	completions, err := t.completions(ctx)
	if err != nil {
		return false, err
	}
	dateKey := pkg.DateKey(t.NowFunc())
	return completions.IsCompleted(dateKey, ExerciseRef{Day: day, Index: exerciseIndex}), nil
}

func (t *Tracker) TodayProgress(ctx context.Context) (_ *TodayProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.todayProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completions, err := t.completions(ctx)
	if err != nil {
		return nil, err
	}

	now := t.NowFunc().UTC()
	dateKey := pkg.DateKey(now)
	day := workouts.DayNumber(now)

	plan, err := t.catalog.PlanForDay(ctx, day)
	if err != nil && !errors.Is(err, workouts.ErrPlanNotFound) {
		return nil, err
	}

	prog := &TodayProgress{
		Completed: completions.CompletedCount(dateKey, day),
	}
	if plan != nil {
		prog.Total = len(plan.Exercises)
		for i, exercise := range plan.Exercises {
			if completions.IsCompleted(dateKey, ExerciseRef{Day: day, Index: i}) {
				prog.Calories += exercise.Calories
			}
		}
	}
	prog.Percentage = pkg.RoundedPercentage(prog.Completed, prog.Total)

	return prog, nil
}

// WeeklyProgress aggregates the calendar week from the most recent
// Sunday through the following Saturday. The completion rate is
// normalized against the whole catalog's exercise count times seven,
// a flat weekly capacity, not a per-day one.
func (t *Tracker) WeeklyProgress(ctx context.Context) (_ *WeeklyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.weeklyProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completions, err := t.completions(ctx)
	if err != nil {
		return nil, err
	}

	today := t.NowFunc().UTC()
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	prog := &WeeklyProgress{
		DayStats: make(map[string]DayStats),
	}

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		dateKey := pkg.DateKey(date)
		day := workouts.DayNumber(date)

		dayCompleted := completions.CompletedCount(dateKey, day)
		dayCalories := 0

		plan, err := t.catalog.PlanForDay(ctx, day)
		if err != nil && !errors.Is(err, workouts.ErrPlanNotFound) {
			return nil, err
		}
		if plan != nil {
			for j, exercise := range plan.Exercises {
				if completions.IsCompleted(dateKey, ExerciseRef{Day: day, Index: j}) {
					dayCalories += exercise.Calories
				}
			}
		}

		if completions.HasAny(dateKey) {
			prog.ActiveDays++
		}
		prog.Completed += dayCompleted
		prog.Calories += dayCalories
		prog.DayStats[dateKey] = DayStats{
			Completed: dayCompleted,
			Calories:  dayCalories,
		}
	}

	totalExercises, err := t.catalog.TotalExercises(ctx)
	if err != nil {
		return nil, err
	}
	prog.CompletionRate = pkg.RoundedPercentage(prog.Completed, totalExercises*7)

	return prog, nil
}

// Streak counts consecutive days, ending today, with at least one
// completed exercise. Zero when nothing is completed today - the
// streak is a run through today, not the longest run ever.
func (t *Tracker) Streak(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completions, err := t.completions(ctx)
	if err != nil {
		return 0, err
	}

	streak := 0
	for date := t.NowFunc(); completions.HasAny(pkg.DateKey(date)); date = date.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

// ExerciseFrequencies returns the most performed exercises within the
// lookback window, most frequent first, capped at ten. Exercises are
// grouped by name: the same movement appearing in two plans counts as
// one. Ties keep the order the exercises were first logged in.
func (t *Tracker) ExerciseFrequencies(ctx context.Context, windowDays int) (_ []ExerciseFrequency, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.exerciseFrequencies")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if windowDays <= 0 {
		windowDays = DefaultFrequencyWindowDays
	}
	span.SetAttributes(attribute.Int("window_days", windowDays))

	history, err := t.history(ctx)
	if err != nil {
		return nil, err
	}

	now := t.NowFunc()
	cutoff := now.AddDate(0, 0, -windowDays)

	counts := make(map[string]int)
	var firstSeen []string
	for _, entry := range history {
		if !entry.Completed {
			continue
		}
		if entry.Timestamp.Before(cutoff) || entry.Timestamp.After(now) {
			continue
		}
		if _, seen := counts[entry.ExerciseName]; !seen {
			firstSeen = append(firstSeen, entry.ExerciseName)
		}
		counts[entry.ExerciseName]++
	}

	frequencies := make([]ExerciseFrequency, 0, len(firstSeen))
	for _, name := range firstSeen {
		frequencies = append(frequencies, ExerciseFrequency{
			Name:  name,
			Count: counts[name],
		})
	}

	sort.SliceStable(frequencies, func(i, j int) bool {
		return frequencies[i].Count > frequencies[j].Count
	})

	if len(frequencies) > maxFrequencyResults {
		frequencies = frequencies[:maxFrequencyResults]
	}
	return frequencies, nil
}

// SuggestedWorkouts returns up to three plans matching the user goal
// by category. An unrecognized goal falls back to the first three
// plans in catalog order.
func (t *Tracker) SuggestedWorkouts(ctx context.Context) (_ []workouts.WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.suggestedWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := t.catalog.Goal(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("goal", string(goal)))

	plans, err := t.catalog.Plans(ctx)
	if err != nil {
		return nil, err
	}

	var suggested []workouts.WorkoutPlan
	if goal.Valid() {
		for _, plan := range plans {
			if plan.Category == workouts.Category(goal) {
				suggested = append(suggested, plan)
			}
		}
	} else {
		suggested = plans
	}

	if len(suggested) > maxSuggestions {
		suggested = suggested[:maxSuggestions]
	}
	return suggested, nil
}

// TotalWorkoutsCompleted is the lifetime count of completed-exercise
// history entries. Repeated marks of the same exercise each count,
// the log records every completion action.
func (t *Tracker) TotalWorkoutsCompleted(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.totalWorkoutsCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := t.history(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range history {
		if entry.Completed {
			total++
		}
	}
	return total, nil
}

// History returns the full workout history log, oldest entry first
func (t *Tracker) History(ctx context.Context) (_ []HistoryEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return t.history(ctx)
}

func (t *Tracker) resolveExercise(ctx context.Context, day, exerciseIndex int) (*workouts.Exercise, error) {
	plan, err := t.catalog.PlanForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return plan.ExerciseAt(exerciseIndex)
}

func (t *Tracker) completions(ctx context.Context) (CompletionMap, error) {
	rawCompletions, err := t.store.Get(ctx, keyCompletedExercises)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return make(CompletionMap), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completions: %w", err)
	}

	var completions CompletionMap
	if err := json.Unmarshal([]byte(rawCompletions), &completions); err != nil {
		return nil, fmt.Errorf("unmarshal persisted completions: %w", err)
	}
	return completions, nil
}

func (t *Tracker) saveCompletions(ctx context.Context, completions CompletionMap) error {
	completionsJson, err := json.Marshal(completions)
	if err != nil {
		return fmt.Errorf("marshal completions: %w", err)
	}
	if err := t.store.Set(ctx, keyCompletedExercises, string(completionsJson)); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

func (t *Tracker) history(ctx context.Context) ([]HistoryEntry, error) {
	rawHistory, err := t.store.Get(ctx, keyWorkoutHistory)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return []HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	var history []HistoryEntry
	if err := json.Unmarshal([]byte(rawHistory), &history); err != nil {
		return nil, fmt.Errorf("unmarshal persisted history: %w", err)
	}
	return history, nil
}

func (t *Tracker) appendHistory(ctx context.Context, entry HistoryEntry) error {
	history, err := t.history(ctx)
	if err != nil {
		return err
	}

	history = append(history, entry)
	historyJson, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := t.store.Set(ctx, keyWorkoutHistory, string(historyJson)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
