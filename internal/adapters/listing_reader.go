package adapters

import (
	"context"

	"homely_backend/internal/leads/ports"
	listingdomain "homely_backend/internal/listings/domain"
)

// ListingGetter is satisfied by the listings service.
type ListingGetter interface {
	Get(ctx context.Context, id int) (listingdomain.Listing, error)
}

// ListingReader adapts the listings service for the leads domain.
type ListingReader struct {
	listings ListingGetter
}

// NewListingReader creates a new listing reader adapter.
func NewListingReader(listings ListingGetter) *ListingReader {
	return &ListingReader{listings: listings}
}

var _ ports.ListingReader = (*ListingReader)(nil)

// GetListingSummary returns the title and location of a listing.
func (a *ListingReader) GetListingSummary(ctx context.Context, id int) (ports.ListingSummary, error) {
	l, err := a.listings.Get(ctx, id)
	if err != nil {
		return ports.ListingSummary{}, err
	}
	return ports.ListingSummary{ID: l.ID, Title: l.Title, Location: l.Location}, nil
}
