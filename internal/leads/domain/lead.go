// Package domain holds the lead model captured from the public site forms.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the form a lead came from.
type Kind string

const (
	KindEnquiry     Kind = "enquiry"
	KindVisit       Kind = "visit"
	KindAlertSignup Kind = "alert_signup"
)

// Valid reports whether k is a known lead kind.
func (k Kind) Valid() bool {
	switch k {
	case KindEnquiry, KindVisit, KindAlertSignup:
		return true
	}
	return false
}

// HasListing reports whether leads of this kind refer to a listing.
func (k Kind) HasListing() bool {
	return k == KindEnquiry || k == KindVisit
}

// Lead is a stored form submission. Phone is E.164.
type Lead struct {
	ID        uuid.UUID
	Kind      Kind
	Name      string
	Email     string
	Phone     string
	Message   string
	ListingID *int
	VisitDate *time.Time
	VisitTime *string
	CreatedAt time.Time
}

// VisitAt combines the requested date and time in loc. It reports false for
// non-visit leads or an unparsable time.
func (l Lead) VisitAt(loc *time.Location) (time.Time, bool) {
	if l.VisitDate == nil || l.VisitTime == nil {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", *l.VisitTime)
	if err != nil {
		return time.Time{}, false
	}
	d := *l.VisitDate
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), true
}
