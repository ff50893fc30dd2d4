package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/config"
	dbRedis "github.com/helix-supply/partdex/internal/db/redis"
	logpkg "github.com/helix-supply/partdex/internal/logger"
	"github.com/helix-supply/partdex/internal/metrics"
	smtpNotify "github.com/helix-supply/partdex/internal/notify/smtp"
	inquiryrepo "github.com/helix-supply/partdex/internal/repository/inquiry"
	lexicalrepo "github.com/helix-supply/partdex/internal/repository/lexical"
	vectorrepo "github.com/helix-supply/partdex/internal/repository/vector"
	chiTransport "github.com/helix-supply/partdex/internal/transport/chi"
	openaiTransport "github.com/helix-supply/partdex/internal/transport/openai"
	healthuc "github.com/helix-supply/partdex/internal/usecase/health"
	inquiryuc "github.com/helix-supply/partdex/internal/usecase/inquiry"
	searchuc "github.com/helix-supply/partdex/internal/usecase/search"
	smartuc "github.com/helix-supply/partdex/internal/usecase/smartsearch"
	"github.com/helix-supply/partdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting partdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register retrieval metrics explicitly (no init())
	metrics.Register()

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	analyzer := openaiTransport.NewAnalyzer(&openaiTransport.AnalyzerConfig{
		APIKey:  cfg.Analyzer.APIKey,
		BaseURL: cfg.Analyzer.BaseURL,
		Model:   cfg.Analyzer.Model,
		Timeout: time.Duration(cfg.Analyzer.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	logger.Info("Inference clients created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.String("analyzer_model", cfg.Analyzer.Model),
	)

	// Create repositories
	partPrefix := cfg.Storage.PartPrefix()
	lexRepo := lexicalrepo.New(store, partPrefix, lexicalrepo.Boosts(cfg.Search.Boosts))
	vecRepo := vectorrepo.New(store, partPrefix)
	inqRepo := inquiryrepo.New(store, cfg.Storage.InquiryPrefix())

	// Create use case services
	searchSvc := searchuc.New(lexRepo, vecRepo, embedder, searchuc.Weights(cfg.Search.Fusion))
	smartSvc := smartuc.New(analyzer, searchSvc, cfg.Search.DefaultLimit, cfg.Search.ShortQueryTokens)

	// Notifier is optional; empty SMTP host disables email.
	var notifier inquiryuc.Notifier
	if cfg.SMTP.Host != "" {
		notifier = smtpNotify.New(smtpNotify.Config(cfg.SMTP))
	}
	inqSvc := inquiryuc.New(inqRepo, notifier, logger)

	healthSvc := healthuc.New(store, embedder, analyzer)

	// Create chi server
	server := chiTransport.NewServer(smartSvc, searchSvc, inqSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
