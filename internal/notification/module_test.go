package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"homely_backend/internal/email"
	"homely_backend/internal/events"
	"homely_backend/internal/scheduler"
	"homely_backend/platform/logger"

	"github.com/google/uuid"
)

type testConfig struct{ inbox string }

func (testConfig) GetAppBaseURL() string          { return "https://homely.example.com/" }
func (c testConfig) GetAgentInboxAddress() string { return c.inbox }

type sentMail struct {
	kind string
	to   string
	lead email.LeadAlert
	trip email.Visit
}

type testSender struct {
	sent []sentMail
	fail bool
	// failKinds makes only the listed mail kinds fail.
	failKinds map[string]bool
}

func (s *testSender) failing(kind string) bool {
	return s.fail || s.failKinds[kind]
}

func (s *testSender) SendLeadAlert(_ context.Context, to string, a email.LeadAlert) error {
	if s.failing("alert") {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, sentMail{kind: "alert", to: to, lead: a})
	return nil
}

func (s *testSender) SendVisitConfirmation(_ context.Context, to string, v email.Visit) error {
	if s.failing("confirmation") {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, sentMail{kind: "confirmation", to: to, trip: v})
	return nil
}

func (s *testSender) SendVisitReminder(_ context.Context, to string, v email.Visit) error {
	s.sent = append(s.sent, sentMail{kind: "reminder", to: to, trip: v})
	return nil
}

func (s *testSender) SendAlertWelcome(_ context.Context, to, _ string) error {
	s.sent = append(s.sent, sentMail{kind: "welcome", to: to})
	return nil
}

type scheduled struct {
	payload scheduler.VisitReminderPayload
	runAt   time.Time
}

type testReminders struct{ calls []scheduled }

func (r *testReminders) ScheduleVisitReminder(_ context.Context, p scheduler.VisitReminderPayload, runAt time.Time) error {
	r.calls = append(r.calls, scheduled{payload: p, runAt: runAt})
	return nil
}

func newTestModule(sender *testSender, reminders *testReminders) *Module {
	m := New(sender, reminders, testConfig{inbox: "agents@homely.example.com"}, logger.Discard())
	m.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, m.loc) }
	return m
}

func listingPtr(id int) *int { return &id }

func TestEnquirySendsAgentAlertOnly(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, &testReminders{})

	err := m.Handle(context.Background(), events.LeadSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       uuid.New(),
		Kind:         "enquiry",
		Name:         "Asha",
		Email:        "asha@example.com",
		Phone:        "+919876543210",
		ListingID:    listingPtr(3),
		ListingTitle: "Sea View Apartment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "alert" {
		t.Fatalf("expected a single agent alert, got %+v", sender.sent)
	}
	got := sender.sent[0]
	if got.to != "agents@homely.example.com" || got.lead.ListingURL != "https://homely.example.com/?property=3" {
		t.Fatalf("unexpected alert %+v", got)
	}
}

func TestVisitSendsConfirmationAndSchedulesReminder(t *testing.T) {
	sender := &testSender{}
	reminders := &testReminders{}
	m := newTestModule(sender, reminders)
	leadID := uuid.New()

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID:       leadID,
		Kind:         "visit",
		Name:         "Ravi",
		Email:        "ravi@example.com",
		ListingID:    listingPtr(1),
		ListingTitle: "Modern Villa with Pool",
		VisitDate:    "2025-03-14",
		VisitTime:    "16:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 2 || sender.sent[1].kind != "confirmation" || sender.sent[1].to != "ravi@example.com" {
		t.Fatalf("expected alert then confirmation, got %+v", sender.sent)
	}
	if len(reminders.calls) != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", len(reminders.calls))
	}
	want := time.Date(2025, 3, 13, 16, 30, 0, 0, m.loc)
	if !reminders.calls[0].runAt.Equal(want) || reminders.calls[0].payload.LeadID != leadID.String() {
		t.Fatalf("unexpected reminder %+v", reminders.calls[0])
	}
}

func TestVisitTomorrowSkipsReminder(t *testing.T) {
	reminders := &testReminders{}
	m := newTestModule(&testSender{}, reminders)

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID:    uuid.New(),
		Kind:      "visit",
		Email:     "ravi@example.com",
		ListingID: listingPtr(1),
		VisitDate: "2025-03-11",
		VisitTime: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reminders.calls) != 0 {
		t.Fatalf("reminder inside the lead window must not be scheduled")
	}
}

func TestVisitWithoutSchedulerStillConfirms(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testConfig{}, logger.Discard())

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID:    uuid.New(),
		Kind:      "visit",
		Email:     "ravi@example.com",
		ListingID: listingPtr(1),
		VisitDate: "2099-03-11",
		VisitTime: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "confirmation" {
		t.Fatalf("expected only the confirmation without an inbox, got %+v", sender.sent)
	}
}

func TestAlertSignupSendsWelcome(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, nil)

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID: uuid.New(),
		Kind:   "alert_signup",
		Name:   "Meera",
		Email:  "meera@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 2 || sender.sent[1].kind != "welcome" || sender.sent[0].lead.ListingURL != "" {
		t.Fatalf("unexpected mail %+v", sender.sent)
	}
}

func TestReminderDueSendsReminder(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, nil)

	err := m.Handle(context.Background(), events.VisitReminderDue{
		LeadID:       uuid.New(),
		Name:         "Ravi",
		Email:        "ravi@example.com",
		ListingID:    5,
		ListingTitle: "Garden Cottage",
		VisitDate:    "2025-03-11",
		VisitTime:    "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "reminder" {
		t.Fatalf("expected reminder, got %+v", sender.sent)
	}
	if sender.sent[0].trip.ListingURL != "https://homely.example.com/?property=5" {
		t.Fatalf("unexpected listing url %q", sender.sent[0].trip.ListingURL)
	}
}

func TestSendFailureIsReturned(t *testing.T) {
	m := newTestModule(&testSender{fail: true}, nil)
	err := m.Handle(context.Background(), events.LeadSubmitted{LeadID: uuid.New(), Kind: "enquiry"})
	if err == nil {
		t.Fatalf("expected send error")
	}
}

func TestAlertFailureStillConfirmsAndSchedulesReminder(t *testing.T) {
	sender := &testSender{failKinds: map[string]bool{"alert": true}}
	reminders := &testReminders{}
	m := newTestModule(sender, reminders)

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID:    uuid.New(),
		Kind:      "visit",
		Email:     "ravi@example.com",
		ListingID: listingPtr(1),
		VisitDate: "2025-03-14",
		VisitTime: "16:30",
	})
	if err == nil {
		t.Fatalf("expected the alert failure to be reported")
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "confirmation" {
		t.Fatalf("confirmation must still be sent, got %+v", sender.sent)
	}
	if len(reminders.calls) != 1 {
		t.Fatalf("reminder must still be scheduled, got %d", len(reminders.calls))
	}
}

func TestConfirmationFailureStillSchedulesReminder(t *testing.T) {
	sender := &testSender{failKinds: map[string]bool{"confirmation": true}}
	reminders := &testReminders{}
	m := newTestModule(sender, reminders)

	err := m.Handle(context.Background(), events.LeadSubmitted{
		LeadID:    uuid.New(),
		Kind:      "visit",
		Email:     "ravi@example.com",
		ListingID: listingPtr(1),
		VisitDate: "2025-03-14",
		VisitTime: "16:30",
	})
	if err == nil {
		t.Fatalf("expected the confirmation failure to be reported")
	}
	if len(reminders.calls) != 1 {
		t.Fatalf("reminder must still be scheduled, got %d", len(reminders.calls))
	}
}
