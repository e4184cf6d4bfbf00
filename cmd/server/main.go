package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/config"
	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/handlers"
	"github.com/planwell/dayplan/internal/logger"
	"github.com/planwell/dayplan/internal/middleware"
	"github.com/planwell/dayplan/internal/queue"
	"github.com/planwell/dayplan/internal/schedule"
	"github.com/planwell/dayplan/internal/services/ai"
	"github.com/planwell/dayplan/internal/telemetry"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for generation service logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry tracing
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "dayplan-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	if err := db.Migrate(context.Background()); err != nil {
		zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
	}
	zapLogger.Info("connected_to_database")

	// Redis for rate limiting
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("invalid_redis_url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	// RabbitMQ job queue (optional): without it, feedback analysis jobs are
	// disabled but schedule generation still works
	var jobQueue queue.JobQueue
	if cfg.RabbitMQURL != "" {
		jobQueue = connectQueue(cfg.RabbitMQURL, zapLogger)
		if jobQueue != nil {
			defer func() {
				if err := jobQueue.Close(); err != nil {
					zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
				}
			}()
		}
	} else {
		zapLogger.Warn("rabbitmq_not_configured_feedback_analysis_disabled")
	}

	// Repositories
	userRepo := database.NewUserRepository(db)
	taskRepo := database.NewTaskRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	feedbackRepo := database.NewFeedbackRepository(db)

	// Generation provider: a missing service is not fatal, the rule-based
	// path covers every request
	registry := ai.NewDefaultRegistry()
	provider, err := registry.GetProvider(cfg.AIProvider, cfg.AIConfig(), zapLogger)
	if err != nil {
		zapLogger.Warn("failed_to_create_generation_provider_using_fallback_only", zap.Error(err))
		provider = nil
	}

	generator := schedule.NewGenerator(provider, zapLogger)
	chatService := ai.NewChatService(provider, zapLogger)

	// Handlers
	healthChecker := handlers.NewHealthChecker(db, redisClient, jobQueue)
	userHandler := handlers.NewUserHandler(userRepo, cfg.JWTSecret, zapLogger)
	profileHandler := handlers.NewProfileHandler(userRepo, zapLogger)
	taskHandler := handlers.NewTaskHandler(taskRepo, zapLogger)
	scheduleHandler := handlers.NewScheduleHandler(generator, scheduleRepo, taskRepo, feedbackRepo, jobQueue, zapLogger)
	chatHandler := handlers.NewChatHandler(chatService, zapLogger)

	// Router and middleware
	r := mux.NewRouter()

	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware("dayplan-api"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(redisClient, cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	authMW := middleware.Auth(userRepo, cfg.JWTSecret, zapLogger)

	// Public routes
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", healthChecker.VersionInfo).Methods("GET")

	openAPIPath := filepath.Join("api", "openapi", "openapi.yaml")
	openAPIHandler := handlers.NewOpenAPIHandler(openAPIPath)
	openAPIHandler.RegisterRoutes(r)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	// Registration is public but rate limited
	registerRouter := apiRouter.PathPrefix("/users").Subrouter()
	registerRouter.Use(rateLimitMW)
	registerRouter.HandleFunc("", userHandler.Register).Methods("POST")

	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	authRouter.Use(authMW)
	authRouter.Use(rateLimitMW)
	authRouter.HandleFunc("/me", userHandler.Me).Methods("GET")

	profileRouter := apiRouter.PathPrefix("/profile").Subrouter()
	profileRouter.Use(authMW)
	profileRouter.Use(rateLimitMW)
	profileRouter.HandleFunc("", profileHandler.GetProfile).Methods("GET")
	profileRouter.HandleFunc("", profileHandler.UpdateProfile).Methods("PUT")

	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	tasksRouter.Use(authMW)
	tasksRouter.Use(rateLimitMW)
	taskHandler.RegisterRoutes(tasksRouter)

	scheduleRouter := apiRouter.PathPrefix("/schedule").Subrouter()
	scheduleRouter.Use(authMW)
	scheduleRouter.Use(rateLimitMW)
	scheduleHandler.RegisterRoutes(scheduleRouter)

	aiRouter := apiRouter.PathPrefix("/ai").Subrouter()
	aiRouter.Use(authMW)
	aiRouter.Use(rateLimitMW)
	aiRouter.HandleFunc("/chat", chatHandler.Chat).Methods("POST")

	adminRouter := apiRouter.PathPrefix("/admin").Subrouter()
	adminRouter.Use(authMW)
	adminRouter.Use(rateLimitMW)
	adminRouter.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers))).Methods("GET")

	// Catch-all OPTIONS handler for preflight requests; the CORS middleware
	// sets the headers before this runs
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   90 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// connectQueue dials RabbitMQ with exponential backoff to ride out broker
// startup delays. Returns nil when the broker never comes up.
func connectQueue(amqpURL string, zapLogger *zap.Logger) queue.JobQueue {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	zapLogger.Error("failed_to_connect_to_rabbitmq_feedback_analysis_disabled")
	return nil
}
