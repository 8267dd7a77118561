// Package notification turns lead events into outgoing email and
// visit reminders. It subscribes to the event bus and has no HTTP surface.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homely_backend/internal/email"
	"homely_backend/internal/events"
	"homely_backend/internal/leads/domain"
	"homely_backend/internal/scheduler"
	"homely_backend/platform/logger"
)

// reminderLead is how long before a visit the reminder mail goes out.
const reminderLead = 24 * time.Hour

// Config is the subset of application settings this module reads.
type Config interface {
	GetAppBaseURL() string
	GetAgentInboxAddress() string
}

// Module handles lead notifications.
type Module struct {
	sender    email.Sender
	reminders scheduler.ReminderScheduler
	cfg       Config
	loc       *time.Location
	now       func() time.Time
	log       *logger.Logger
}

// New creates the notification module. reminders may be nil when the
// scheduler is disabled.
func New(sender email.Sender, reminders scheduler.ReminderScheduler, cfg Config, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{
		sender:    sender,
		reminders: reminders,
		cfg:       cfg,
		loc:       time.FixedZone("IST", 5*60*60+30*60),
		now:       time.Now,
		log:       log,
	}
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadSubmitted{}.EventName(), m)
	bus.Subscribe(events.VisitReminderDue{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadSubmitted:
		return m.handleLeadSubmitted(ctx, e)
	case events.VisitReminderDue:
		return m.handleVisitReminderDue(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// handleLeadSubmitted runs every step even when an earlier one fails and
// returns the joined errors.
func (m *Module) handleLeadSubmitted(ctx context.Context, e events.LeadSubmitted) error {
	listingURL := m.listingURL(e.ListingID)

	var errs []error
	if inbox := m.cfg.GetAgentInboxAddress(); inbox != "" {
		alert := email.LeadAlert{
			Kind:         e.Kind,
			Name:         e.Name,
			Email:        e.Email,
			Phone:        e.Phone,
			Message:      e.Message,
			ListingTitle: e.ListingTitle,
			ListingURL:   listingURL,
			VisitDate:    e.VisitDate,
			VisitTime:    e.VisitTime,
		}
		if err := m.sender.SendLeadAlert(ctx, inbox, alert); err != nil {
			m.log.Error("failed to send lead alert", "error", err, "leadId", e.LeadID)
			errs = append(errs, fmt.Errorf("lead alert: %w", err))
		}
	}

	switch e.Kind {
	case string(domain.KindVisit):
		errs = append(errs, m.handleVisitRequested(ctx, e, listingURL)...)
	case string(domain.KindAlertSignup):
		if err := m.sender.SendAlertWelcome(ctx, e.Email, e.Name); err != nil {
			m.log.Error("failed to send alert welcome", "error", err, "leadId", e.LeadID)
			errs = append(errs, fmt.Errorf("alert welcome: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (m *Module) handleVisitRequested(ctx context.Context, e events.LeadSubmitted, listingURL string) []error {
	var errs []error
	visit := email.Visit{
		ConsumerName: e.Name,
		ListingTitle: e.ListingTitle,
		ListingURL:   listingURL,
		Date:         e.VisitDate,
		Time:         e.VisitTime,
	}
	if err := m.sender.SendVisitConfirmation(ctx, e.Email, visit); err != nil {
		m.log.Error("failed to send visit confirmation", "error", err, "leadId", e.LeadID)
		errs = append(errs, fmt.Errorf("visit confirmation: %w", err))
	}

	if err := m.scheduleReminder(ctx, e); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (m *Module) scheduleReminder(ctx context.Context, e events.LeadSubmitted) error {
	if m.reminders == nil {
		return nil
	}
	visitAt, err := time.ParseInLocation("2006-01-02 15:04", e.VisitDate+" "+e.VisitTime, m.loc)
	if err != nil {
		m.log.Warn("visit time unparsable, reminder skipped", "leadId", e.LeadID, "date", e.VisitDate, "time", e.VisitTime)
		return nil
	}
	runAt := visitAt.Add(-reminderLead)
	if !runAt.After(m.now()) {
		return nil
	}

	payload := scheduler.VisitReminderPayload{LeadID: e.LeadID.String()}
	if err := m.reminders.ScheduleVisitReminder(ctx, payload, runAt); err != nil {
		m.log.Error("failed to schedule visit reminder", "error", err, "leadId", e.LeadID)
		return fmt.Errorf("visit reminder: %w", err)
	}
	m.log.Info("visit reminder scheduled", "leadId", e.LeadID, "runAt", runAt)
	return nil
}

func (m *Module) handleVisitReminderDue(ctx context.Context, e events.VisitReminderDue) error {
	id := e.ListingID
	visit := email.Visit{
		ConsumerName: e.Name,
		ListingTitle: e.ListingTitle,
		ListingURL:   m.listingURL(&id),
		Date:         e.VisitDate,
		Time:         e.VisitTime,
	}
	if err := m.sender.SendVisitReminder(ctx, e.Email, visit); err != nil {
		m.log.Error("failed to send visit reminder", "error", err, "leadId", e.LeadID)
		return err
	}
	return nil
}

func (m *Module) listingURL(id *int) string {
	if id == nil {
		return ""
	}
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	return fmt.Sprintf("%s/?property=%d", base, *id)
}
