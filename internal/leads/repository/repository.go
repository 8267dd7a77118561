package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homely_backend/internal/leads/domain"
	"homely_backend/platform/apperr"
)

// ErrNotFound is returned when a lead does not exist.
var ErrNotFound = apperr.NotFound("lead not found")

// LeadsRepository persists leads.
type LeadsRepository interface {
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, params ListParams) ([]domain.Lead, int, error)
}

// ListParams filters and paginates the admin lead list.
type ListParams struct {
	Kind   *domain.Kind
	Offset int
	Limit  int
}

// Repository is the pgx implementation of LeadsRepository.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ LeadsRepository = (*Repository)(nil)

const leadColumns = `id, kind, name, email, phone, message, listing_id, visit_date, visit_time, created_at`

func (r *Repository) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (id, kind, name, email, phone, message, listing_id, visit_date, visit_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		lead.ID, string(lead.Kind), lead.Name, lead.Email, lead.Phone, lead.Message,
		lead.ListingID, lead.VisitDate, lead.VisitTime,
	)
	created, err := scanLead(row)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	if err != nil {
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]domain.Lead, int, error) {
	var kind *string
	if params.Kind != nil {
		k := string(*params.Kind)
		kind = &k
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM leads WHERE ($1::text IS NULL OR kind = $1)
	`, kind).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE ($1::text IS NULL OR kind = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, kind, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, total, nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		lead domain.Lead
		kind string
	)
	err := row.Scan(
		&lead.ID, &kind, &lead.Name, &lead.Email, &lead.Phone, &lead.Message,
		&lead.ListingID, &lead.VisitDate, &lead.VisitTime, &lead.CreatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	lead.Kind = domain.Kind(kind)
	return lead, nil
}
