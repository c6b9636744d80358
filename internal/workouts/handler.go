package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog *Catalog
	metrics *metrics.Manager
}

func NewHandler(catalog *Catalog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		catalog: catalog,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	router.HandleFunc("/workouts/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("today-workout")
	router.HandleFunc("/workouts/day/{day}", handler.HandleForDay).Methods("GET", "OPTIONS").Name("workout-for-day")
	router.HandleFunc("/workouts/todayplan", handler.HandleTodayPlan).Methods("GET", "OPTIONS").Name("today-plan")
	router.HandleFunc("/workouts/todayplan/{day}", handler.HandleAddToTodayPlan).Methods("POST", "OPTIONS").Name("add-to-today-plan")
	router.HandleFunc("/workouts/custom", handler.HandleListCustom).Methods("GET", "OPTIONS").Name("list-custom-workouts")
	router.HandleFunc("/workouts/custom", handler.HandleAddCustom).Methods("POST", "OPTIONS").Name("new-custom-workout")
	router.HandleFunc("/workouts/custom", handler.HandleClearCustom).Methods("DELETE", "OPTIONS").Name("clear-custom-workouts")
	router.HandleFunc("/workouts/custom/{index}", handler.HandleUpdateCustom).Methods("PUT", "OPTIONS").Name("update-custom-workout")
	router.HandleFunc("/workouts/custom/{index}", handler.HandleDeleteCustom).Methods("DELETE", "OPTIONS").Name("remove-custom-workout")
	router.HandleFunc("/goal", handler.HandleGetGoal).Methods("GET", "OPTIONS").Name("get-goal")
	router.HandleFunc("/goal", handler.HandleSetGoal).Methods("POST", "OPTIONS").Name("set-goal")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	plans, err := handler.catalog.Plans(ctx)
	if err != nil {
		log.Errorf("list workout plans: %s", err)
		http.Error(w, "failed to get workout plans", http.StatusInternalServerError)
		return
	}

	plansJson, err := json.Marshal(plans)
	if err != nil {
		log.Errorf("marshal workout plans: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, plansJson)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.today")
	defer span.End()

	plan, err := handler.catalog.PlanForToday(ctx)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "no workout plan for today", http.StatusNotFound)
			return
		}
		log.Errorf("get today's workout plan: %s", err)
		http.Error(w, "failed to get today's workout plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal workout plan: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}

func (handler *Handler) HandleForDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.forDay")
	defer span.End()

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}

	plan, err := handler.catalog.PlanForDay(ctx, day)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "workout plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout plan for day %d: %s", day, err)
		http.Error(w, "failed to get workout plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal workout plan: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}

func (handler *Handler) HandleTodayPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.todayPlan")
	defer span.End()

	days, err := handler.catalog.TodayPlan(ctx)
	if err != nil {
		log.Errorf("get today plan: %s", err)
		http.Error(w, "failed to get today plan", http.StatusInternalServerError)
		return
	}

	daysJson, err := json.Marshal(days)
	if err != nil {
		log.Errorf("marshal today plan: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, daysJson)
}

func (handler *Handler) HandleAddToTodayPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.addToTodayPlan")
	defer span.End()

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.AddToTodayPlan(ctx, day); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "workout plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("add day %d to today plan: %s", day, err)
		http.Error(w, "failed to add to today plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"added":true}`)
}

func (handler *Handler) HandleListCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listCustom")
	defer span.End()

	plans, err := handler.catalog.CustomPlans(ctx)
	if err != nil {
		log.Errorf("list custom workout plans: %s", err)
		http.Error(w, "failed to get custom workout plans", http.StatusInternalServerError)
		return
	}

	plansJson, err := json.Marshal(plans)
	if err != nil {
		log.Errorf("marshal custom workout plans: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, plansJson)
}

func (handler *Handler) HandleAddCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.addCustom")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("new custom workout, unmarshal json params: %s", err)
		http.Error(w, "add custom workout failed", http.StatusBadRequest)
		return
	}

	if plan.Name == "" {
		http.Error(w, "error, custom workout name empty", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.AddCustom(ctx, plan); err != nil {
		log.Errorf("failed to add custom workout [%s]: %s", plan.Name, err)
		http.Error(w, "error, failed to add custom workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterCustomPlans.Inc()
	log.Debugf("new custom workout added: [%s]", plan.Name)
	pkg.WriteResponse(w, pkg.ContentType.JSON, `{"added":true}`, http.StatusCreated)
}

func (handler *Handler) HandleUpdateCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.updateCustom")
	defer span.End()

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	var plan WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("update custom workout, unmarshal json params: %s", err)
		http.Error(w, "update custom workout failed", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.UpdateCustom(ctx, index, plan); err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			http.Error(w, "custom workout index out of range", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to update custom workout %d: %s", index, err)
		http.Error(w, "error, failed to update custom workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"updated":true}`)
}

func (handler *Handler) HandleDeleteCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteCustom")
	defer span.End()

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.DeleteCustom(ctx, index); err != nil {
		if errors.Is(err, ErrIndexOutOfRange) {
			http.Error(w, "custom workout index out of range", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to delete custom workout %d: %s", index, err)
		http.Error(w, "error, failed to delete custom workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"deleted":true}`)
}

func (handler *Handler) HandleClearCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.clearCustom")
	defer span.End()

	if err := handler.catalog.ClearCustom(ctx); err != nil {
		log.Errorf("failed to clear custom workouts: %s", err)
		http.Error(w, "error, failed to clear custom workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"cleared":true}`)
}

func (handler *Handler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getGoal")
	defer span.End()

	goal, err := handler.catalog.Goal(ctx)
	if err != nil {
		log.Errorf("get user goal: %s", err)
		http.Error(w, "failed to get user goal", http.StatusInternalServerError)
		return
	}

	goalJson, err := json.Marshal(struct {
		Goal Goal `json:"goal"`
	}{Goal: goal})
	if err != nil {
		log.Errorf("marshal user goal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, goalJson)
}

func (handler *Handler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.setGoal")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params struct {
		Goal Goal `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("set goal, unmarshal json params: %s", err)
		http.Error(w, "set goal failed", http.StatusBadRequest)
		return
	}

	if err := handler.catalog.SetGoal(ctx, params.Goal); err != nil {
		if errors.Is(err, ErrUnknownGoal) {
			http.Error(w, "unknown goal", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to set goal [%s]: %s", params.Goal, err)
		http.Error(w, "error, failed to set goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"saved":true}`)
}
