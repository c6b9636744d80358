package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/keyvalue"
	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	keyWorkouts       = "workouts"
	keyCustomWorkouts = "customWorkouts"
	keyTodayPlan      = "todayPlan"
	keyUserGoal       = "userGoal"
)

// DayNumber maps a calendar weekday to the plan day number:
// Monday is 1 ... Saturday is 6, Sunday is 7
func DayNumber(t time.Time) int {
	weekday := int(t.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}

// Catalog serves the weekly workout plans, plus the user-defined custom
// plans layered on top. All state lives behind the injected keyvalue
// store, the catalog itself is stateless.
type Catalog struct {
	store keyvalue.Store
	// ability to inject the clock (for unit and dev testing)
	NowFunc func() time.Time
}

func NewCatalog(store keyvalue.Store) *Catalog {
	return &Catalog{
		store:   store,
		NowFunc: time.Now,
	}
}

// Plans returns the persisted catalog; on the very first access it
// seeds the store with the built-in default plans, so that subsequent
// reads are stable
func (c *Catalog) Plans(ctx context.Context) (_ []WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.plans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rawPlans, err := c.store.Get(ctx, keyWorkouts)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		defaults := DefaultPlans()
		defaultsJson, err := json.Marshal(defaults)
		if err != nil {
			return nil, fmt.Errorf("marshal default plans: %w", err)
		}
		if err := c.store.Set(ctx, keyWorkouts, string(defaultsJson)); err != nil {
			return nil, fmt.Errorf("seed default plans: %w", err)
		}
		span.SetAttributes(attribute.Bool("catalog.seeded", true))
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plans: %w", err)
	}

	var plans []WorkoutPlan
	if err := json.Unmarshal([]byte(rawPlans), &plans); err != nil {
		return nil, fmt.Errorf("unmarshal persisted plans: %w", err)
	}
	return plans, nil
}

func (c *Catalog) PlanForDay(ctx context.Context, day int) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.planForDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day", day))

	plans, err := c.Plans(ctx)
	if err != nil {
		return nil, err
	}

	for i := range plans {
		if plans[i].Day == day {
			return &plans[i], nil
		}
	}
	return nil, ErrPlanNotFound
}

func (c *Catalog) PlanForToday(ctx context.Context) (*WorkoutPlan, error) {
	return c.PlanForDay(ctx, DayNumber(c.NowFunc().UTC()))
}

// TotalExercises returns the number of exercises across the whole
// catalog, used as the capacity denominator in weekly stats
func (c *Catalog) TotalExercises(ctx context.Context) (int, error) {
	plans, err := c.Plans(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for i := range plans {
		total += len(plans[i].Exercises)
	}
	return total, nil
}

func (c *Catalog) CustomPlans(ctx context.Context) (_ []WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.customPlans")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rawPlans, err := c.store.Get(ctx, keyCustomWorkouts)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return []WorkoutPlan{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get custom plans: %w", err)
	}

	var plans []WorkoutPlan
	if err := json.Unmarshal([]byte(rawPlans), &plans); err != nil {
		return nil, fmt.Errorf("unmarshal persisted custom plans: %w", err)
	}
	return plans, nil
}

func (c *Catalog) AddCustom(ctx context.Context, plan WorkoutPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.addCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := c.CustomPlans(ctx)
	if err != nil {
		return err
	}

	plans = append(plans, plan)
	return c.saveCustom(ctx, plans)
}

func (c *Catalog) UpdateCustom(ctx context.Context, index int, plan WorkoutPlan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.updateCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("index", index))

	plans, err := c.CustomPlans(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(plans) {
		return ErrIndexOutOfRange
	}

	plans[index] = plan
	return c.saveCustom(ctx, plans)
}

func (c *Catalog) DeleteCustom(ctx context.Context, index int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.deleteCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("index", index))

	plans, err := c.CustomPlans(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(plans) {
		return ErrIndexOutOfRange
	}

	plans = append(plans[:index], plans[index+1:]...)
	return c.saveCustom(ctx, plans)
}

func (c *Catalog) ClearCustom(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.clearCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return c.saveCustom(ctx, []WorkoutPlan{})
}

func (c *Catalog) saveCustom(ctx context.Context, plans []WorkoutPlan) error {
	plansJson, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("marshal custom plans: %w", err)
	}
	if err := c.store.Set(ctx, keyCustomWorkouts, string(plansJson)); err != nil {
		return fmt.Errorf("save custom plans: %w", err)
	}
	return nil
}

// TodayPlan returns the day numbers the user queued up for today,
// in the order they were added
func (c *Catalog) TodayPlan(ctx context.Context) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.todayPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rawPlan, err := c.store.Get(ctx, keyTodayPlan)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get today plan: %w", err)
	}

	var days []int
	if err := json.Unmarshal([]byte(rawPlan), &days); err != nil {
		return nil, fmt.Errorf("unmarshal persisted today plan: %w", err)
	}
	return days, nil
}

// AddToTodayPlan queues the given plan day for today. Adding the same
// day twice is a no-op.
func (c *Catalog) AddToTodayPlan(ctx context.Context, day int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.addToTodayPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("day", day))

	if _, err := c.PlanForDay(ctx, day); err != nil {
		return err
	}

	days, err := c.TodayPlan(ctx)
	if err != nil {
		return err
	}

	for _, d := range days {
		if d == day {
			return nil
		}
	}
	days = append(days, day)

	daysJson, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("marshal today plan: %w", err)
	}
	if err := c.store.Set(ctx, keyTodayPlan, string(daysJson)); err != nil {
		return fmt.Errorf("save today plan: %w", err)
	}
	return nil
}

// Goal returns the persisted user goal, or the default when not set
func (c *Catalog) Goal(ctx context.Context) (_ Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.goal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rawGoal, err := c.store.Get(ctx, keyUserGoal)
	if errors.Is(err, keyvalue.ErrKeyNotFound) {
		return DefaultGoal, nil
	}
	if err != nil {
		return "", fmt.Errorf("get user goal: %w", err)
	}
	return Goal(rawGoal), nil
}

func (c *Catalog) SetGoal(ctx context.Context, goal Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.setGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal", string(goal)))

	if !goal.Valid() {
		return ErrUnknownGoal
	}
	if err := c.store.Set(ctx, keyUserGoal, string(goal)); err != nil {
		return fmt.Errorf("save user goal: %w", err)
	}
	return nil
}
