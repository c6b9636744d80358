package progress

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/internal/workouts"
	"github.com/2beens/fittracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CompleteExerciseRequest struct {
	Day           int `json:"day"`
	ExerciseIndex int `json:"exerciseIndex"`
}

type Handler struct {
	tracker *Tracker
	metrics *metrics.Manager
}

func NewHandler(tracker *Tracker, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		tracker: tracker,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	commandsAllowedPerMin int,
) {
	markComplete := http.Handler(http.HandlerFunc(handler.HandleMarkComplete))
	toggleComplete := http.Handler(http.HandlerFunc(handler.HandleToggleComplete))
	if rateLimiter != nil {
		// rate limit the mutating endpoints to prevent abuse
		rateLimit := middleware.RateLimit(rateLimiter, "progress-commands", commandsAllowedPerMin)
		markComplete = rateLimit(markComplete)
		toggleComplete = rateLimit(toggleComplete)
	}
	router.Handle("/progress/complete", markComplete).Methods("POST", "OPTIONS").Name("mark-complete")
	router.Handle("/progress/toggle", toggleComplete).Methods("POST", "OPTIONS").Name("toggle-complete")
	router.HandleFunc("/progress/completed/day/{day}/exercise/{index}", handler.HandleIsCompleted).Methods("GET", "OPTIONS").Name("is-completed")
	router.HandleFunc("/progress/today", handler.HandleTodayProgress).Methods("GET", "OPTIONS").Name("today-progress")
	router.HandleFunc("/progress/weekly", handler.HandleWeeklyProgress).Methods("GET", "OPTIONS").Name("weekly-progress")
	router.HandleFunc("/progress/streak", handler.HandleStreak).Methods("GET", "OPTIONS").Name("streak")
	router.HandleFunc("/progress/frequency", handler.HandleExerciseFrequencies).Methods("GET", "OPTIONS").Name("exercise-frequency")
	router.HandleFunc("/progress/suggested", handler.HandleSuggestedWorkouts).Methods("GET", "OPTIONS").Name("suggested-workouts")
	router.HandleFunc("/progress/total", handler.HandleTotalWorkouts).Methods("GET", "OPTIONS").Name("total-workouts")
	router.HandleFunc("/progress/history", handler.HandleHistory).Methods("GET", "OPTIONS").Name("workout-history")
}

func (handler *Handler) decodeCompleteRequest(w http.ResponseWriter, r *http.Request) (*CompleteExerciseRequest, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return nil, false
	}

	var req CompleteExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("complete exercise, unmarshal json params: %s", err)
		http.Error(w, "complete exercise failed", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (handler *Handler) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.markComplete")
	defer span.End()

	req, ok := handler.decodeCompleteRequest(w, r)
	if !ok {
		return
	}

	if err := handler.tracker.MarkComplete(ctx, req.Day, req.ExerciseIndex); err != nil {
		if errors.Is(err, workouts.ErrPlanNotFound) || errors.Is(err, workouts.ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to mark exercise [day %d, index %d] complete: %s", req.Day, req.ExerciseIndex, err)
		http.Error(w, "error, failed to mark exercise complete", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisesCompleted.Inc()
	handler.metrics.CounterHistoryEntries.Inc()
	log.Debugf("exercise marked complete: day %d, index %d", req.Day, req.ExerciseIndex)
	pkg.WriteJSONResponseOK(w, `{"completed":true}`)
}

func (handler *Handler) HandleToggleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.toggleComplete")
	defer span.End()

	req, ok := handler.decodeCompleteRequest(w, r)
	if !ok {
		return
	}

	if err := handler.tracker.ToggleComplete(ctx, req.Day, req.ExerciseIndex); err != nil {
		if errors.Is(err, workouts.ErrPlanNotFound) || errors.Is(err, workouts.ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to toggle exercise [day %d, index %d]: %s", req.Day, req.ExerciseIndex, err)
		http.Error(w, "error, failed to toggle exercise", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExerciseToggles.Inc()
	handler.metrics.CounterHistoryEntries.Inc()

	completed, err := handler.tracker.IsCompleted(ctx, req.Day, req.ExerciseIndex)
	if err != nil {
		log.Errorf("failed to get completion state [day %d, index %d]: %s", req.Day, req.ExerciseIndex, err)
		http.Error(w, "error, failed to get completion state", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(struct {
		Completed bool `json:"completed"`
	}{Completed: completed})
	if err != nil {
		log.Errorf("marshal toggle response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleIsCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.isCompleted")
	defer span.End()

	vars := mux.Vars(r)
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	completed, err := handler.tracker.IsCompleted(ctx, day, index)
	if err != nil {
		log.Errorf("failed to get completion state [day %d, index %d]: %s", day, index, err)
		http.Error(w, "error, failed to get completion state", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(struct {
		Completed bool `json:"completed"`
	}{Completed: completed})
	if err != nil {
		log.Errorf("marshal completion state: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleTodayProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.today")
	defer span.End()

	prog, err := handler.tracker.TodayProgress(ctx)
	if err != nil {
		log.Errorf("get today progress: %s", err)
		http.Error(w, "failed to get today progress", http.StatusInternalServerError)
		return
	}

	progJson, err := json.Marshal(prog)
	if err != nil {
		log.Errorf("marshal today progress: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progJson)
}

func (handler *Handler) HandleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.weekly")
	defer span.End()

	prog, err := handler.tracker.WeeklyProgress(ctx)
	if err != nil {
		log.Errorf("get weekly progress: %s", err)
		http.Error(w, "failed to get weekly progress", http.StatusInternalServerError)
		return
	}

	progJson, err := json.Marshal(prog)
	if err != nil {
		log.Errorf("marshal weekly progress: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progJson)
}

func (handler *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.streak")
	defer span.End()

	streak, err := handler.tracker.Streak(ctx)
	if err != nil {
		log.Errorf("get streak: %s", err)
		http.Error(w, "failed to get streak", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(struct {
		Streak int `json:"streak"`
	}{Streak: streak})
	if err != nil {
		log.Errorf("marshal streak: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleExerciseFrequencies(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.frequency")
	defer span.End()

	windowDays := DefaultFrequencyWindowDays
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil {
			http.Error(w, "error, days NaN", http.StatusBadRequest)
			return
		}
		windowDays = days
	}

	frequencies, err := handler.tracker.ExerciseFrequencies(ctx, windowDays)
	if err != nil {
		log.Errorf("get exercise frequencies: %s", err)
		http.Error(w, "failed to get exercise frequencies", http.StatusInternalServerError)
		return
	}

	frequenciesJson, err := json.Marshal(frequencies)
	if err != nil {
		log.Errorf("marshal exercise frequencies: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, frequenciesJson)
}

func (handler *Handler) HandleSuggestedWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.suggested")
	defer span.End()

	suggested, err := handler.tracker.SuggestedWorkouts(ctx)
	if err != nil {
		log.Errorf("get suggested workouts: %s", err)
		http.Error(w, "failed to get suggested workouts", http.StatusInternalServerError)
		return
	}

	suggestedJson, err := json.Marshal(suggested)
	if err != nil {
		log.Errorf("marshal suggested workouts: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, suggestedJson)
}

func (handler *Handler) HandleTotalWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.total")
	defer span.End()

	total, err := handler.tracker.TotalWorkoutsCompleted(ctx)
	if err != nil {
		log.Errorf("get total workouts completed: %s", err)
		http.Error(w, "failed to get total workouts", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(struct {
		Total int `json:"total"`
	}{Total: total})
	if err != nil {
		log.Errorf("marshal total workouts: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.history")
	defer span.End()

	history, err := handler.tracker.History(ctx)
	if err != nil {
		log.Errorf("get workout history: %s", err)
		http.Error(w, "failed to get workout history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("marshal workout history: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}
