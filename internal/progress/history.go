package progress

import "time"

// HistoryEntry is one record in the append-only workout history log.
// Every mark/toggle action appends exactly one entry, recording the
// resulting completion state, with the exercise name and calories
// snapshotted at that moment - a later plan edit does not rewrite the
// log. The log is the source of truth for lifetime totals and
// frequency stats, while the completion map answers "is this done
// today" and streak queries.
type HistoryEntry struct {
	Date          string    `json:"date"`
	Day           int       `json:"day"`
	ExerciseIndex int       `json:"exerciseIndex"`
	ExerciseName  string    `json:"exerciseName"`
	Calories      int       `json:"calories"`
	Completed     bool      `json:"completed"`
	Timestamp     time.Time `json:"timestamp"`
}
