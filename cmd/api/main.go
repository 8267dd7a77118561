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

	"homely_backend/internal/adapters"
	"homely_backend/internal/adapters/storage"
	"homely_backend/internal/assistant"
	assistantservice "homely_backend/internal/assistant/service"
	"homely_backend/internal/content"
	"homely_backend/internal/email"
	"homely_backend/internal/events"
	apphttp "homely_backend/internal/http"
	"homely_backend/internal/http/router"
	"homely_backend/internal/leads"
	leadrepo "homely_backend/internal/leads/repository"
	"homely_backend/internal/listings"
	listingrepo "homely_backend/internal/listings/repository"
	"homely_backend/internal/notification"
	"homely_backend/internal/scheduler"
	"homely_backend/platform/cache"
	"homely_backend/platform/config"
	"homely_backend/platform/db"
	"homely_backend/platform/logger"
	"homely_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

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
		return db.RunMigrations(ctx, cfg)
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

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Event bus for decoupled communication between modules. Wait drains
	// in-flight handlers before the scheduler client and pool close.
	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	answerCache := initAnswerCache(cfg, log)

	storageSvc := initStorage(ctx, cfg, log)

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	source, err := listingSource(cfg, pool)
	if err != nil {
		log.Error("failed to initialize listing source", "error", err)
		panic("failed to initialize listing source: " + err.Error())
	}
	listingsModule := listings.NewModule(source, storageSvc, cfg, val, log)
	listingReader := adapters.NewListingReader(listingsModule.Service())

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(email.NewSender(cfg), reminderScheduler, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	leadsModule := leads.NewModule(leadrepo.New(pool), listingReader, eventBus, val, log)

	generator, err := assistantservice.NewGenerator(ctx, cfg.GetGeminiAPIKey())
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}
	chatModel, err := assistantservice.NewChatModel(ctx, cfg.GetGeminiAPIKey(), cfg.GetChatModel())
	if err != nil {
		log.Error("failed to initialize chat model", "error", err)
		panic("failed to initialize chat model: " + err.Error())
	}
	chatSessions, err := assistantservice.NewChatSessions(chatModel, cfg.GetChatSessionTTL(), log)
	if err != nil {
		log.Error("failed to initialize chat sessions", "error", err)
		panic("failed to initialize chat sessions: " + err.Error())
	}
	answers := assistantservice.New(generator, listingsModule.Service(), assistantservice.Models{
		Grounded:    cfg.GetGroundedModel(),
		Description: cfg.GetDescriptionModel(),
	}, answerCache, log)
	assistantModule := assistant.NewModule(answers, chatSessions, val)

	site, err := content.Default()
	if err != nil {
		log.Error("failed to load site content", "error", err)
		panic("failed to load site content: " + err.Error())
	}
	contentModule := content.NewModule(site, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			listingsModule,
			assistantModule,
			leadsModule,
			contentModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return assistantModule.Chat().Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

func listingSource(cfg config.ListingsConfig, pool *pgxpool.Pool) (listingrepo.Source, error) {
	if cfg.GetListingsSource() == "static" {
		return listingrepo.NewDefaultStaticSource()
	}
	return listingrepo.New(pool), nil
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; visit reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func initAnswerCache(cfg config.CacheConfig, log *logger.Logger) *cache.JSONCache {
	if !cfg.IsCacheEnabled() {
		log.Info("assistant answer cache disabled")
		return nil
	}
	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to initialize redis cache; continuing without it", "error", err)
		return nil
	}
	return cache.New(client, "homely:assistant", cfg.GetAICacheTTL())
}

// initStorage returns nil when MinIO is not configured; image presigning then
// reports an error instead of failing startup.
func initStorage(ctx context.Context, cfg config.MinIOConfig, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Info("MINIO_ENDPOINT not configured; listing image uploads disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	bucket := cfg.GetMinioBucketListingImages()
	if err := withRetry(ctx, log, "ensure listing-images bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "listingImagesBucket", bucket)
	return storageSvc
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

	return errors.New(name + ": " + lastErr.Error())
}
