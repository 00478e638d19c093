// Package main is the entry point for the NLP dialogue service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yukishop/nlp-service/internal/config"
	"github.com/yukishop/nlp-service/internal/dispatch"
	"github.com/yukishop/nlp-service/internal/events"
	"github.com/yukishop/nlp-service/internal/handler"
	"github.com/yukishop/nlp-service/internal/middleware"
	"github.com/yukishop/nlp-service/internal/nlu"
	"github.com/yukishop/nlp-service/internal/session"
	"github.com/yukishop/nlp-service/internal/suggest"
	"github.com/yukishop/nlp-service/internal/tools"
	"github.com/yukishop/nlp-service/pkg/logger"
	"github.com/yukishop/nlp-service/pkg/tracing"
)

func main() {
	// Local development convenience; missing file is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting NLP service",
		zap.String("port", cfg.ServerPort),
		zap.String("api_base_url", cfg.APIBaseURL),
	)

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, cfg.ServiceName, cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Intent classifier is required: without it every message would fall
	// through to the general branch.
	classifier, err := nlu.LoadIntentClassifier(cfg.VectorizerPath, cfg.IntentModelPath)
	if err != nil {
		log.Error("failed to load intent classifier", zap.Error(err))
		os.Exit(1)
	}
	log.Info("intent classifier loaded", zap.String("model", cfg.IntentModelPath))

	// Suggestion model is optional. When any of its artifacts fail to load
	// the service runs rule-only for the rest of the process lifetime.
	suggestionStrategy := "rules"
	var strategy suggest.Strategy = suggest.Rules{}
	suggestionModel, err := suggest.LoadModel(
		cfg.SuggestionVectorizerPath,
		cfg.SuggestionModelPath,
		cfg.SuggestionBinarizerPath,
		cfg.SuggestionTopK,
	)
	if err != nil {
		log.Warn("suggestion model unavailable, using rule-based suggestions", zap.Error(err))
	} else {
		strategy = suggest.ModelWithFallback{Model: suggestionModel, Rules: suggest.Rules{}}
		suggestionStrategy = "model"
		log.Info("suggestion model loaded", zap.String("model", cfg.SuggestionModelPath))
	}
	suggester := suggest.NewEngine(strategy)

	// Conversation context store: Redis when configured, in-memory otherwise.
	var sessions session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Error("failed to connect to Redis", zap.Error(err))
			os.Exit(1)
		}
		defer redisStore.Close()
		sessions = redisStore
		log.Info("using Redis session store", zap.Duration("ttl", cfg.SessionTTL))
	} else {
		sessions = session.NewMemoryStore()
		log.Info("using in-memory session store")
	}

	// Backend tool invoker
	invoker := tools.NewInvoker(cfg.APIBaseURL, cfg.ToolTimeout, log)

	// Dialogue event publishing is optional.
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(cfg.NATSURL, cfg.EventsSubject, cfg.ServiceName, log)
		if err != nil {
			log.Warn("failed to connect to NATS, event publishing disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			log.Info("publishing dialogue events", zap.String("subject", cfg.EventsSubject))
		}
	}

	var eventSink dispatch.EventPublisher
	if publisher != nil {
		eventSink = publisher
	}

	dispatcher := dispatch.New(classifier, nlu.NewExtractor(), invoker, suggester, sessions, eventSink, log)

	// Initialize handlers
	predictHandler := handler.NewPredictHandler(dispatcher, log)
	healthHandler := handler.NewHealthHandler(cfg.ServiceName, suggestionStrategy, cfg.APIBaseURL)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"X-Correlation-ID"},
		MaxAge:         300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Prediction endpoint
	r.With(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)).
		Post("/predict", predictHandler.Predict)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped")
}
