package service

import (
	"time"

	"homely_backend/internal/events"
	"homely_backend/internal/leads/domain"
	"homely_backend/internal/leads/ports"
	"homely_backend/internal/leads/transport"
)

// ToLeadResponse converts a stored lead to its admin view.
func ToLeadResponse(lead domain.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:        lead.ID.String(),
		Kind:      string(lead.Kind),
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		ListingID: lead.ListingID,
		VisitTime: lead.VisitTime,
		CreatedAt: lead.CreatedAt,
	}
	if lead.VisitDate != nil {
		date := lead.VisitDate.Format(time.DateOnly)
		resp.VisitDate = &date
	}
	return resp
}

func toEvent(lead domain.Lead, listing ports.ListingSummary) events.LeadSubmitted {
	evt := events.LeadSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		Kind:         string(lead.Kind),
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Message:      lead.Message,
		ListingID:    lead.ListingID,
		ListingTitle: listing.Title,
	}
	if lead.VisitDate != nil {
		evt.VisitDate = lead.VisitDate.Format(time.DateOnly)
	}
	if lead.VisitTime != nil {
		evt.VisitTime = *lead.VisitTime
	}
	return evt
}
