package repository

import (
	"context"

	"homely_backend/internal/listings/domain"
)

// Source yields the full catalog snapshot in catalog order.
type Source interface {
	All(ctx context.Context) ([]domain.Listing, error)
}

// Writer persists listings. Only the Postgres repository implements it.
type Writer interface {
	Upsert(ctx context.Context, listing domain.Listing) error
}
