package repository

import (
	"context"
	"slices"

	"homely_backend/internal/listings/catalogfile"
	"homely_backend/internal/listings/domain"
)

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	listings []domain.Listing
}

var _ Source = (*StaticSource)(nil)

// NewStaticSource wraps listings. The slice is copied.
func NewStaticSource(listings []domain.Listing) *StaticSource {
	return &StaticSource{listings: slices.Clone(listings)}
}

// NewDefaultStaticSource serves the embedded launch catalog.
func NewDefaultStaticSource() (*StaticSource, error) {
	listings, err := catalogfile.Default()
	if err != nil {
		return nil, err
	}
	return NewStaticSource(listings), nil
}

// All returns a copy of the catalog.
func (s *StaticSource) All(_ context.Context) ([]domain.Listing, error) {
	return slices.Clone(s.listings), nil
}
