package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homely_backend/internal/listings/domain"
	"homely_backend/platform/apperr"
)

const listingNotFoundMessage = "listing not found"

const listingColumns = `
	id, title, kind, price, location, beds, baths, sqft, featured, lat, lng,
	status, verified, agent_name, agent_avatar_url, image_urls, amenities,
	description, rera_approved, loan_availability, authority_verified`

// Repo implements the listings repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new listings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time checks.
var (
	_ Source = (*Repo)(nil)
	_ Writer = (*Repo)(nil)
)

// All returns every listing in insertion order.
func (r *Repo) All(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return items, nil
}

// GetByID retrieves a listing by ID.
func (r *Repo) GetByID(ctx context.Context, id int) (domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return domain.Listing{}, fmt.Errorf("get listing by id: %w", err)
	}
	return l, nil
}

// Upsert inserts a listing or replaces every column of an existing one.
// Catalog position is kept on update.
func (r *Repo) Upsert(ctx context.Context, l domain.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			kind = EXCLUDED.kind,
			price = EXCLUDED.price,
			location = EXCLUDED.location,
			beds = EXCLUDED.beds,
			baths = EXCLUDED.baths,
			sqft = EXCLUDED.sqft,
			featured = EXCLUDED.featured,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			status = EXCLUDED.status,
			verified = EXCLUDED.verified,
			agent_name = EXCLUDED.agent_name,
			agent_avatar_url = EXCLUDED.agent_avatar_url,
			image_urls = EXCLUDED.image_urls,
			amenities = EXCLUDED.amenities,
			description = EXCLUDED.description,
			rera_approved = EXCLUDED.rera_approved,
			loan_availability = EXCLUDED.loan_availability,
			authority_verified = EXCLUDED.authority_verified,
			updated_at = now()`

	status := l.Status
	if status == "" {
		status = domain.StatusReadyToMove
	}

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Title, string(l.Kind), l.Price, l.Location, l.Beds, l.Baths, l.Sqft, l.Featured,
		l.Position.Lat, l.Position.Lng, string(status), l.Verified, l.Agent.Name, l.Agent.AvatarURL,
		nonNil(l.ImageURLs), nonNil(l.Amenities), l.Description, l.ReraApproved, l.LoanAvailability,
		l.AuthorityVerified,
	)
	if err != nil {
		return fmt.Errorf("upsert listing %d: %w", l.ID, err)
	}
	return nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var (
		l      domain.Listing
		kind   string
		status string
	)
	err := row.Scan(
		&l.ID, &l.Title, &kind, &l.Price, &l.Location, &l.Beds, &l.Baths, &l.Sqft, &l.Featured,
		&l.Position.Lat, &l.Position.Lng, &status, &l.Verified, &l.Agent.Name, &l.Agent.AvatarURL,
		&l.ImageURLs, &l.Amenities, &l.Description, &l.ReraApproved, &l.LoanAvailability,
		&l.AuthorityVerified,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Kind = domain.TransactionKind(kind)
	l.Status = domain.ConstructionStatus(status)
	return l, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
