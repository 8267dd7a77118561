// Package service implements lead capture for the public site forms.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"homely_backend/internal/events"
	"homely_backend/internal/leads/domain"
	"homely_backend/internal/leads/ports"
	"homely_backend/internal/leads/repository"
	"homely_backend/internal/leads/transport"
	"homely_backend/platform/apperr"
	"homely_backend/platform/logger"
	"homely_backend/platform/phone"
	"homely_backend/platform/sanitize"
)

// Confirmation copy returned to the visitor after a successful submission.
const (
	MsgEnquiryReceived = "Your enquiry has been sent. Our agent will get in touch with you shortly."
	MsgVisitRequested  = "Our agent will contact you shortly to confirm your visit. Thank you!"
	MsgAlertSignedUp   = "Thank you for signing up. Keep an eye on your inbox for exclusive updates."

	msgListingNotFound = "listing not found"
	msgVisitInPast     = "visit date cannot be in the past"
	msgInvalidKind     = "invalid lead kind"

	defaultPageSize = 20
	maxPageSize     = 100
)

// IST is the time zone visit requests are interpreted in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Service provides business logic for leads.
type Service struct {
	repo     repository.LeadsRepository
	listings ports.ListingReader
	bus      events.Bus
	now      func() time.Time
	log      *logger.Logger
}

// New creates a new leads service.
func New(repo repository.LeadsRepository, listings ports.ListingReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, listings: listings, bus: bus, now: time.Now, log: log}
}

// SubmitEnquiry stores an enquiry about a listing.
func (s *Service) SubmitEnquiry(ctx context.Context, req transport.EnquiryRequest) (transport.SubmitResponse, error) {
	listing, err := s.listing(ctx, req.ListingID)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = fmt.Sprintf(`I am interested in "%s". Please provide more details.`, listing.Title)
	}
	lead := domain.Lead{
		Kind:      domain.KindEnquiry,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   message,
		ListingID: &listing.ID,
	}
	return s.submit(ctx, lead, listing, MsgEnquiryReceived)
}

// SubmitVisit stores a request to visit a listing.
func (s *Service) SubmitVisit(ctx context.Context, req transport.VisitRequest) (transport.SubmitResponse, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return transport.SubmitResponse{}, apperr.Validation("invalid visit date")
	}
	today := s.now().In(IST)
	if date.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		return transport.SubmitResponse{}, apperr.Validation(msgVisitInPast)
	}

	listing, err := s.listing(ctx, req.ListingID)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	visitTime := req.Time
	lead := domain.Lead{
		Kind:      domain.KindVisit,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   strings.TrimSpace(req.Message),
		ListingID: &listing.ID,
		VisitDate: &date,
		VisitTime: &visitTime,
	}
	return s.submit(ctx, lead, listing, MsgVisitRequested)
}

// SubmitAlertSignup stores a promotional sign-up.
func (s *Service) SubmitAlertSignup(ctx context.Context, req transport.AlertSignupRequest) (transport.SubmitResponse, error) {
	lead := domain.Lead{
		Kind:  domain.KindAlertSignup,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	return s.submit(ctx, lead, ports.ListingSummary{}, MsgAlertSignedUp)
}

func (s *Service) submit(ctx context.Context, lead domain.Lead, listing ports.ListingSummary, confirmation string) (transport.SubmitResponse, error) {
	lead.ID = uuid.New()
	lead.Name = sanitize.Text(lead.Name)
	lead.Message = sanitize.Text(lead.Message)
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Phone = phone.NormalizeE164(lead.Phone)

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return transport.SubmitResponse{}, err
	}

	s.bus.Publish(ctx, toEvent(created, listing))
	s.log.Info("lead submitted", "lead_id", created.ID, "kind", created.Kind)

	return transport.SubmitResponse{ID: created.ID.String(), Message: confirmation}, nil
}

func (s *Service) listing(ctx context.Context, id int) (ports.ListingSummary, error) {
	listing, err := s.listings.GetListingSummary(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return ports.ListingSummary{}, apperr.NotFound(msgListingNotFound)
		}
		return ports.ListingSummary{}, err
	}
	return listing, nil
}

// List returns a page of leads, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	params := repository.ListParams{
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
	}
	if req.Kind != "" {
		kind := domain.Kind(req.Kind)
		if !kind.Valid() {
			return transport.LeadListResponse{}, apperr.Validation(msgInvalidKind)
		}
		params.Kind = &kind
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
	}, nil
}

// Get returns one lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(lead), nil
}

// Lead returns the stored lead. Used by the reminder worker.
func (s *Service) Lead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}
