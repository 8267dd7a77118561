package scheduler

import (
	"context"
	"fmt"
	"time"

	"homely_backend/internal/events"
	"homely_backend/internal/leads/domain"
	"homely_backend/internal/leads/ports"
	"homely_backend/platform/apperr"
	"homely_backend/platform/config"
	"homely_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// LeadReader loads a stored lead.
type LeadReader interface {
	Lead(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	leads    LeadReader
	listings ports.ListingReader
	bus      events.Bus
	loc      *time.Location
	now      func() time.Time
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, leads LeadReader, listings ports.ListingReader, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := newWorker(leads, listings, bus, log)
	w.server = server
	return w, nil
}

func newWorker(leads LeadReader, listings ports.ListingReader, bus events.Bus, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:      mux,
		leads:    leads,
		listings: listings,
		bus:      bus,
		loc:      time.FixedZone("IST", 5*60*60+30*60),
		now:      time.Now,
		log:      log,
	}
	mux.HandleFunc(TaskVisitReminder, w.handleVisitReminder)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleVisitReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseVisitReminderPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("parse lead id: %v: %w", err, asynq.SkipRetry)
	}

	lead, err := w.leads.Lead(ctx, leadID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if lead.Kind != domain.KindVisit || lead.ListingID == nil || lead.Email == "" {
		return nil
	}
	visitAt, ok := lead.VisitAt(w.loc)
	if !ok || !visitAt.After(w.now()) {
		return nil
	}

	title := ""
	if listing, err := w.listings.GetListingSummary(ctx, *lead.ListingID); err == nil {
		title = listing.Title
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}

	if w.bus == nil {
		return nil
	}

	return w.bus.PublishSync(ctx, events.VisitReminderDue{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		Name:         lead.Name,
		Email:        lead.Email,
		ListingID:    *lead.ListingID,
		ListingTitle: title,
		VisitDate:    lead.VisitDate.Format(time.DateOnly),
		VisitTime:    *lead.VisitTime,
	})
}
