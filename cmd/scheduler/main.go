package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homely_backend/internal/adapters"
	"homely_backend/internal/email"
	"homely_backend/internal/events"
	leadrepo "homely_backend/internal/leads/repository"
	leadservice "homely_backend/internal/leads/service"
	listingrepo "homely_backend/internal/listings/repository"
	listingservice "homely_backend/internal/listings/service"
	"homely_backend/internal/notification"
	"homely_backend/internal/scheduler"
	"homely_backend/platform/config"
	"homely_backend/platform/db"
	"homely_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	// Reminder mail is sent from here; the worker never schedules new reminders.
	notificationModule := notification.New(email.NewSender(cfg), nil, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	var source listingrepo.Source = listingrepo.New(pool)
	if cfg.GetListingsSource() == "static" {
		static, err := listingrepo.NewDefaultStaticSource()
		if err != nil {
			log.Error("failed to load static catalog", "error", err)
			panic("failed to load static catalog: " + err.Error())
		}
		source = static
	}
	listings := adapters.NewListingReader(listingservice.New(source, listingservice.Options{
		CacheTTL: cfg.GetListingsCacheTTL(),
		BaseURL:  cfg.GetAppBaseURL(),
	}, log))

	leads := leadservice.New(leadrepo.New(pool), listings, eventBus, log)

	worker, err := scheduler.NewWorker(cfg, leads, listings, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	eventBus.Wait()
	log.Info("scheduler stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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

	return errors.New(name + ": " + lastErr.Error())
}
