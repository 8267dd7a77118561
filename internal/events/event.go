// Package events declares the domain events exchanged between modules.
// The bus itself lives in platform/events and is aliased here so modules
// import a single package.
package events

import (
	"homely_backend/platform/events"
	"homely_backend/platform/logger"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates the process-local bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadSubmitted is published after a public form has been stored.
// Listing fields are empty for alert sign-ups; Visit fields only for visit requests.
type LeadSubmitted struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message,omitempty"`
	ListingID    *int      `json:"listingId,omitempty"`
	ListingTitle string    `json:"listingTitle,omitempty"`
	VisitDate    string    `json:"visitDate,omitempty"`
	VisitTime    string    `json:"visitTime,omitempty"`
}

func (e LeadSubmitted) EventName() string { return "leads.lead.submitted" }

// VisitReminderDue is published by the scheduler worker the day before a
// requested visit.
type VisitReminderDue struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ListingID    int       `json:"listingId"`
	ListingTitle string    `json:"listingTitle"`
	VisitDate    string    `json:"visitDate"`
	VisitTime    string    `json:"visitTime"`
}

func (e VisitReminderDue) EventName() string { return "leads.visit.reminder_due" }
