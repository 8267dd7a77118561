// Package ports defines the interfaces the leads domain requires from other
// modules, shaped the way leads needs them.
package ports

import "context"

// ListingSummary is the part of a catalog listing a lead refers to.
type ListingSummary struct {
	ID       int
	Title    string
	Location string
}

// ListingReader looks up listings for lead validation and notification copy.
type ListingReader interface {
	// GetListingSummary returns apperr.NotFound for an unknown id.
	GetListingSummary(ctx context.Context, id int) (ListingSummary, error)
}
