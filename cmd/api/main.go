package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colabatr_backend/internal/auth"
	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/email"
	"colabatr_backend/internal/events"
	"colabatr_backend/internal/geocode"
	apphttp "colabatr_backend/internal/http"
	"colabatr_backend/internal/http/router"
	"colabatr_backend/internal/onboarding"
	"colabatr_backend/migrations"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/db"
	"colabatr_backend/platform/logger"
	"colabatr_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Redis is optional; without it the cities query cache is disabled.
	redisClient := initRedis(ctx, cfg, log)
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if cfg.EmailProvider == "" {
		log.Warn("EMAIL_PROVIDER not configured; sign-in link emails disabled")
	}

	// Static city/state/pincode reference dataset, embedded in the binary.
	dataset, err := cities.LoadDataset()
	if err != nil {
		log.Error("failed to load cities dataset", "error", err)
		panic("failed to load cities dataset: " + err.Error())
	}
	log.Info("cities dataset loaded", "entries", dataset.Len())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	authModule := auth.NewModule(pool, cfg, sender, eventBus, val, log)
	citiesModule := cities.NewModule(dataset, redisClient, cfg, log)

	geocodeModule := geocode.NewModule(cfg, log)
	if !geocodeModule.Resolver().Enabled() {
		log.Warn("GOOGLE_MAPS_API_KEY not configured; geocoding degrades to an unavailable state")
	}

	onboardingModule := onboarding.NewModule(cfg, dataset, geocodeModule.Resolver(), eventBus, log)
	onboardingModule.Service().SetSelectCallback(func(ctx context.Context, userID uuid.UUID, record onboarding.LocationRecord) {
		// Persistence and navigation belong to downstream consumers; the
		// composition root only records that the handoff happened.
		log.Info("location handed off",
			"user_id", userID.String(),
			"city", record.City,
			"state", record.State,
			"pincode", record.Pincode,
		)
	})

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			citiesModule,
			geocodeModule,
			onboardingModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not configured; cities query cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid REDIS_URL; cities query cache disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable; cities query cache disabled", "error", err)
		_ = client.Close()
		return nil
	}

	log.Info("redis connection established")
	return client
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
