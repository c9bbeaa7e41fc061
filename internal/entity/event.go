package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSent   = "sent"
	EventTypeOpened = "opened"
)

// EmailEvent is append-only: one row per send, one row per pixel fetch.
// Open counts and open rates are derived from this table, never stored.
type EmailEvent struct {
	ID        string        `json:"id"`
	LeadEmail string        `json:"lead_email"`
	EventType string        `json:"event_type"`
	Metadata  EventMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type EventMetadata struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func NewEmailEvent(leadEmail, eventType string, metadata EventMetadata) *EmailEvent {
	return &EmailEvent{
		ID:        uuid.New().String(),
		LeadEmail: leadEmail,
		EventType: eventType,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

type EventRepositoryInterface interface {
	Insert(ctx context.Context, event *EmailEvent) error
}
