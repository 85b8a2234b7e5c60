package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/bilgiconline/isealim/internal/auth"
	"github.com/bilgiconline/isealim/internal/botcheck"
	"github.com/bilgiconline/isealim/internal/config"
	"github.com/bilgiconline/isealim/internal/feed"
	"github.com/bilgiconline/isealim/internal/intake"
	"github.com/bilgiconline/isealim/internal/logging"
	"github.com/bilgiconline/isealim/internal/review"
	"github.com/bilgiconline/isealim/internal/storage"
	"github.com/bilgiconline/isealim/internal/store"
	"github.com/bilgiconline/isealim/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"submit_max_concurrent", cfg.Submit.MaxConcurrent,
		"captcha_enabled", cfg.Captcha.Enabled,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Apply pending schema migrations before taking traffic
	if err := store.Migrate(cfg.Database.URL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	// Object storage client for CV files
	s3Client, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	uploader := storage.NewCoordinator(s3Client,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
		cfg.Storage.PublicBaseURL,
		cfg.Storage.Timeout,
	)

	repo := store.NewPostgres(pool)
	pipeline := intake.NewPipeline(repo, uploader)
	limiter := intake.NewLimiter(cfg.Submit.MaxConcurrent, cfg.Submit.MaxWait)

	applicationFeed := feed.New(repo)
	listener := feed.NewListener(pool, applicationFeed)

	authService := auth.NewService(
		cfg.Auth.ReviewerEmail,
		cfg.Auth.ReviewerPasswordHash,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
	)
	verifier := botcheck.New(cfg.Captcha.Enabled, cfg.Captcha.Secret, cfg.Captcha.VerifyURL, cfg.Captcha.Timeout)

	server := web.NewServer(cfg, pipeline, limiter, repo, applicationFeed,
		review.NewManager(repo), authService, verifier)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Bridge database change notifications into the live feed
	go listener.Run(jobCtx)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight submissions to complete (with timeout)
		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for submissions to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("submissions did not complete in time", "error", err)
			} else {
				slog.Info("all submissions completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
