package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterExercisesCompleted prometheus.Counter
	CounterExerciseToggles    prometheus.Counter
	CounterHistoryEntries     prometheus.Counter
	CounterCustomPlans        prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("fittracker", "test_server", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterExercisesCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercises_completed",
		Help:      "The total number of exercises marked as completed",
	})
	counterExerciseToggles := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_toggles",
		Help:      "The total number of exercise completion toggles",
	})
	counterHistoryEntries := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "history_entries",
		Help:      "The total number of appended workout history entries",
	})
	counterCustomPlans := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "custom_plans",
		Help:      "The total number of added custom workout plans",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0000001, 0.0000002, 0.0000003, 0.0000004, 0.0000005,
				0.000001, 0.0000025, 0.000005, 0.0000075, 0.00001,
				0.0001, 0.001, 0.01, 0.1, 1, 10, 60,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterExercisesCompleted: counterExercisesCompleted,
		CounterExerciseToggles:    counterExerciseToggles,
		CounterHistoryEntries:     counterHistoryEntries,
		CounterCustomPlans:        counterCustomPlans,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistRequestDuration:       histReqDuration,
	}
}
