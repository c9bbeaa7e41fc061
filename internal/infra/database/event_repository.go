package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/peterw/leadreach/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// Insert appends one event row. The table is append-only; nothing in the
// application updates or deletes from it.
func (r *EventRepository) Insert(ctx context.Context, event *entity.EmailEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("marshal event metadata: %w", err)
	}

	query := `
		INSERT INTO email_events (id, lead_email, event_type, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.DB.ExecContext(ctx, query,
		event.ID,
		event.LeadEmail,
		event.EventType,
		metadata,
		event.CreatedAt,
	)
	return err
}
