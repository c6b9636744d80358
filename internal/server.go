package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fittracker/internal/config"
	"github.com/2beens/fittracker/internal/db"
	"github.com/2beens/fittracker/internal/keyvalue"
	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/misc"
	"github.com/2beens/fittracker/internal/progress"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/internal/workouts"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	dbPool  *pgxpool.Pool
	store   keyvalue.Store
	catalog *workouts.Catalog
	tracker *progress.Tracker

	redisClient *redis.Client

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	var promCollectors []prometheus.Collector

	var dbPool *pgxpool.Pool
	var redisClient *redis.Client
	var store keyvalue.Store

	switch params.Config.StorageBackend {
	case "postgres":
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         params.Config.PostgresHost,
			DBPort:         params.Config.PostgresPort,
			DBName:         params.Config.PostgresDBName,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		promCollectors = append(promCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": params.Config.PostgresDBName},
		))
		store = keyvalue.NewPostgresStore(dbPool)
	case "memory":
		log.Warnln("using in-memory storage, all state is lost on shutdown")
		store = keyvalue.NewMemoryStore()
	default:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		store = keyvalue.NewRedisStore(redisClient)
	}

	if params.Config.OfflineCacheEnabled {
		// queries stay usable on the last known state even when the
		// backing store is unreachable
		store = keyvalue.NewCachedStore(store, params.Config.OfflineCacheSizeMB)
	}

	promRegistry := metrics.SetupPrometheus(promCollectors...)
	metricsManager := metrics.NewManager("fittracker", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittracker-backend")
	if err != nil {
		return nil, err
	}

	catalog := workouts.NewCatalog(store)

	return &Server{
		config:         params.Config,
		versionInfo:    params.VersionInfo,
		dbPool:         dbPool,
		redisClient:    redisClient,
		store:          store,
		catalog:        catalog,
		tracker:        progress.NewTracker(store, catalog),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	workoutsHandler := workouts.NewHandler(s.catalog, s.metricsManager)
	workoutsHandler.SetupRoutes(r)

	var rateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		rateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	progressHandler := progress.NewHandler(s.tracker, s.metricsManager)
	progressHandler.SetupRoutes(r, rateLimiter, s.config.CommandsRateLimitAllowedPerMin)

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
