package transport

import "time"

// EnquiryRequest is the enquiry form on the listing detail page.
type EnquiryRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,in_phone"`
	Message   string `json:"message" validate:"omitempty,max=2000"`
	ListingID int    `json:"listingId" validate:"required,min=1"`
}

// VisitRequest is the book-a-visit form. Date is YYYY-MM-DD and Time is HH:MM.
type VisitRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Phone     string `json:"phone" validate:"required,in_phone"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Message   string `json:"message" validate:"omitempty,max=2000"`
	ListingID int    `json:"listingId" validate:"required,min=1"`
}

// AlertSignupRequest is the promotional sign-up form.
type AlertSignupRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"required,in_phone"`
}

// SubmitResponse acknowledges a stored form.
type SubmitResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListLeadsRequest pages through stored leads.
type ListLeadsRequest struct {
	Kind     string `form:"kind" validate:"omitempty,oneof=enquiry visit alert_signup"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// LeadResponse is the admin view of a lead.
type LeadResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message,omitempty"`
	ListingID *int      `json:"listingId,omitempty"`
	VisitDate *string   `json:"visitDate,omitempty"`
	VisitTime *string   `json:"visitTime,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
