package progress

import (
	"fmt"
	"strconv"
	"strings"
)

// ExerciseRef points at one exercise by its position within a plan.
// It serializes as "day-index", the wire form the completion map has
// always used, so persisted state stays readable across versions.
type ExerciseRef struct {
	Day   int
	Index int
}

func (r ExerciseRef) String() string {
	return fmt.Sprintf("%d-%d", r.Day, r.Index)
}

func (r ExerciseRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *ExerciseRef) UnmarshalText(text []byte) error {
	parsed, err := ParseExerciseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func ParseExerciseRef(s string) (ExerciseRef, error) {
	dayStr, indexStr, found := strings.Cut(s, "-")
	if !found {
		return ExerciseRef{}, fmt.Errorf("malformed exercise ref: %q", s)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return ExerciseRef{}, fmt.Errorf("malformed exercise ref day: %q", s)
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return ExerciseRef{}, fmt.Errorf("malformed exercise ref index: %q", s)
	}
	return ExerciseRef{Day: day, Index: index}, nil
}

// DayCompletions is the set of exercises marked done on one date.
// Unmark deletes the entry, but state written by older clients persists
// "d-i": false instead, so a false value must be treated the same as
// an absent one everywhere.
type DayCompletions map[ExerciseRef]bool

// CompletionMap buckets completions by date key (YYYY-MM-DD)
type CompletionMap map[string]DayCompletions

func (cm CompletionMap) IsCompleted(dateKey string, ref ExerciseRef) bool {
	return cm[dateKey][ref]
}

// Mark sets the completion flag. Marking an already completed exercise
// again changes nothing.
func (cm CompletionMap) Mark(dateKey string, ref ExerciseRef) {
	day, ok := cm[dateKey]
	if !ok {
		day = make(DayCompletions)
		cm[dateKey] = day
	}
	day[ref] = true
}

// Unmark clears the completion flag, dropping the whole date bucket
// when it becomes empty (an empty bucket is equivalent to no bucket)
func (cm CompletionMap) Unmark(dateKey string, ref ExerciseRef) {
	day, ok := cm[dateKey]
	if !ok {
		return
	}
	delete(day, ref)
	if len(day) == 0 {
		delete(cm, dateKey)
	}
}

// CompletedCount returns the number of completions on the given date
// for the given plan day
func (cm CompletionMap) CompletedCount(dateKey string, day int) int {
	count := 0
	for ref, done := range cm[dateKey] {
		if done && ref.Day == day {
			count++
		}
	}
	return count
}

// HasAny reports whether at least one exercise was completed on the
// given date, regardless of which plan it belongs to
func (cm CompletionMap) HasAny(dateKey string) bool {
	for _, done := range cm[dateKey] {
		if done {
			return true
		}
	}
	return false
}
