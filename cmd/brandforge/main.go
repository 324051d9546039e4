// Package main is the entry point for the brand guidelines server.
// It loads configuration, connects to services, sets up routing and the
// background worker pool, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandforge/internal/ai"
	"brandforge/internal/config"
	"brandforge/internal/database"
	"brandforge/internal/handlers"
	"brandforge/internal/jobs"
	"brandforge/internal/middleware"
	"brandforge/internal/pdf"
	"brandforge/internal/pipeline"
	"brandforge/internal/router"
	"brandforge/internal/scrape"
	"brandforge/internal/storage"
	"brandforge/internal/store"
	"brandforge/internal/worker"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"workers", cfg.WorkerCount,
	)

	// Connect to Redis — it holds all live job state and is required.
	redisClient, err := jobs.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	jobStore := jobs.NewStore(redisClient)

	// Pipeline options assembled from the optional backends below.
	var opts []pipeline.Option

	// Connect to PostgreSQL for the job history archive (optional).
	if cfg.HistoryEnabled {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		opts = append(opts, pipeline.WithHistory(store.NewHistoryStore(db)))
	} else {
		slog.Warn("postgres not configured — job history archiving disabled")
	}

	// Connect to S3-compatible object storage (optional — finished PDFs
	// are always written to local disk; S3 adds a durable copy).
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
			opts = append(opts, pipeline.WithArtifacts(storageClient))
		}
	} else {
		slog.Warn("s3 storage not configured — pdf uploads disabled")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Assemble the job pipeline: scrape, extract, generate, render.
	pipe := pipeline.New(
		scrape.New(),
		aiRegistry,
		pdf.New(cfg.PDFOutputDir),
		jobStore,
		opts...,
	)

	// Start the background worker pool that drains the job queue.
	pool := worker.NewPool(pipe, cfg.WorkerCount, cfg.JobTimeout)
	pool.Start(context.Background())

	// Rate limiter for job submission.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	jobsHandler := handlers.NewJobs(jobStore, pool)
	r := router.New(jobsHandler, limiter)

	// Create the HTTP server with sensible timeouts. Responses are small
	// JSON payloads or file downloads; the heavy lifting happens in the
	// worker pool, not inside request handlers.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight jobs finish before exiting.
	pool.Stop()

	slog.Info("server stopped gracefully")
}
