package workouts

import "errors"

var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrIndexOutOfRange  = errors.New("custom plan index out of range")
	ErrUnknownGoal      = errors.New("unknown user goal")
)

// Category is a stable tag on a workout plan, used for goal based
// suggestions. Matching on plan display names breaks as soon as a plan
// gets renamed, so the category is persisted next to the name.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryCore        Category = "core"
	CategoryFlexibility Category = "flexibility"
	CategoryRest        Category = "rest"
)

// Goal is the user fitness goal, it drives workout suggestions
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalCardio      Goal = "cardio"
	GoalFlexibility Goal = "flexibility"

	DefaultGoal = GoalStrength
)

func (g Goal) Valid() bool {
	switch g {
	case GoalStrength, GoalCardio, GoalFlexibility:
		return true
	}
	return false
}

type Exercise struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets,omitempty"`
	Reps     string `json:"reps,omitempty"`
	Duration string `json:"duration,omitempty"`
	Calories int    `json:"calories"`
	Notes    string `json:"notes,omitempty"`
}

// WorkoutPlan is one weekday worth of exercises. Day is 1 for Monday
// through 7 for Sunday. Exercise order is significant, exercises are
// referenced by position within the plan, not by an id.
type WorkoutPlan struct {
	Day       int        `json:"day"`
	Name      string     `json:"name"`
	Category  Category   `json:"category"`
	Exercises []Exercise `json:"exercises"`
}

// ExerciseAt returns the exercise at the given position
func (p *WorkoutPlan) ExerciseAt(index int) (*Exercise, error) {
	if index < 0 || index >= len(p.Exercises) {
		return nil, ErrExerciseNotFound
	}
	return &p.Exercises[index], nil
}
