package entity

import (
	"context"
	"time"
)

// Lead statuses. Dispatch always upserts "new"; the CRM UI moves leads
// forward from there.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusReplied   = "replied"
	LeadStatusClosed    = "closed"
)

type Lead struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"` // unique key, stored lowercase
	BusinessName  string     `json:"business_name"`
	Location      string     `json:"location,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	LastContacted *time.Time `json:"last_contacted,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusReplied, LeadStatusClosed:
		return true
	}
	return false
}

type LeadRepositoryInterface interface {
	// Upsert merges on email: business fields are overwritten for an
	// existing row, event history is untouched.
	Upsert(ctx context.Context, lead *Lead) error

	UpdateLastContacted(ctx context.Context, email string, at time.Time) error

	// ApplyEnrichment fills business/location/notes from an enrichment
	// provider without clobbering values the user already set.
	ApplyEnrichment(ctx context.Context, email, businessName, location, notes string) error
}
