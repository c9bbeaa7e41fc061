package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/peterw/leadreach/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert merges on the email key. Reprocessing an address overwrites the
// business fields but leaves last_contacted and event history alone.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (email, business_name, location, notes, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			business_name = EXCLUDED.business_name,
			location = COALESCE(EXCLUDED.location, leads.location),
			notes = COALESCE(EXCLUDED.notes, leads.notes),
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		lead.BusinessName,
		nullString(lead.Location),
		nullString(lead.Notes),
		lead.Status,
	).Scan(
		&lead.ID,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
}

func (r *LeadRepository) UpdateLastContacted(ctx context.Context, email string, at time.Time) error {
	query := `
		UPDATE leads
		SET last_contacted = $2, updated_at = NOW()
		WHERE email = $1
	`

	_, err := r.DB.ExecContext(ctx, query, email, at)
	return err
}

// ApplyEnrichment backfills fields the row is missing; values the user
// already set are never clobbered.
func (r *LeadRepository) ApplyEnrichment(ctx context.Context, email, businessName, location, notes string) error {
	query := `
		UPDATE leads
		SET
			business_name = COALESCE(NULLIF(leads.business_name, ''), NULLIF($2, ''), leads.business_name),
			location = COALESCE(leads.location, NULLIF($3, '')),
			notes = COALESCE(leads.notes, NULLIF($4, '')),
			updated_at = NOW()
		WHERE email = $1
	`

	_, err := r.DB.ExecContext(ctx, query, email, businessName, location, notes)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
