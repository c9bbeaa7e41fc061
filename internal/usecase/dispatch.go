package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/peterw/leadreach/internal/entity"
	"github.com/peterw/leadreach/internal/infra/integration/hunter"
	"github.com/peterw/leadreach/internal/infra/mail"
	"github.com/peterw/leadreach/internal/infra/queue"
)

const MaxLeadsPerBatch = 30

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

type BulkDispatchInput struct {
	Leads       []LeadInput
	Credentials *RequestCredentials
}

// DispatchResult is the per-lead outcome, returned in input order and
// never persisted.
type DispatchResult struct {
	Email        string                     `json:"email"`
	Status       string                     `json:"status"`
	Error        string                     `json:"error,omitempty"`
	Provider     string                     `json:"provider,omitempty"`
	Verification *hunter.VerificationResult `json:"verification,omitempty"`
}

type BulkDispatchOutput struct {
	Results  []DispatchResult `json:"results"`
	Verified bool             `json:"verified"`
	Provider string           `json:"provider"`
}

type BulkDispatchUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	EventRepo entity.EventRepositoryInterface
	Verifier  EmailVerifier
	Senders   SenderFactory
	Throttle  Throttler
	Queue     queue.EnrichmentPublisherInterface // optional, best-effort
	Env       EnvCredentials
	AppURL    string
}

func NewBulkDispatchUseCase(
	leadRepo entity.LeadRepositoryInterface,
	eventRepo entity.EventRepositoryInterface,
	verifier EmailVerifier,
	senders SenderFactory,
	throttle Throttler,
	producer queue.EnrichmentPublisherInterface,
	env EnvCredentials,
	appURL string,
) *BulkDispatchUseCase {
	return &BulkDispatchUseCase{
		LeadRepo:  leadRepo,
		EventRepo: eventRepo,
		Verifier:  verifier,
		Senders:   senders,
		Throttle:  throttle,
		Queue:     producer,
		Env:       env,
		AppURL:    appURL,
	}
}

// Execute runs one bulk dispatch end to end. Leads are processed strictly
// one at a time; one lead's failure never stops the rest, and there is no
// rollback across the independent store writes.
func (uc *BulkDispatchUseCase) Execute(ctx context.Context, input BulkDispatchInput) (*BulkDispatchOutput, error) {
	if len(input.Leads) == 0 {
		return nil, &DomainError{Code: CodeNoLeads, Message: "No leads provided"}
	}
	if len(input.Leads) > MaxLeadsPerBatch {
		return nil, &DomainError{Code: CodeTooManyLeads, Message: "Maximum 30 leads per request"}
	}

	creds, err := ResolveCredentials(input.Credentials, uc.Env)
	if err != nil {
		return nil, err
	}

	sender, err := uc.Senders(creds)
	if err != nil {
		return nil, &TechnicalError{Code: "SENDER_SETUP", Message: err.Error()}
	}

	results := make([]DispatchResult, 0, len(input.Leads))

	for _, lead := range input.Leads {
		results = append(results, uc.processLead(ctx, lead, creds, sender))

		// Throttle on every terminal path, error or not.
		if err := uc.Throttle.Wait(ctx); err != nil {
			log.Printf("dispatch interrupted after %d of %d leads: %v", len(results), len(input.Leads), err)
			break
		}
	}

	return &BulkDispatchOutput{
		Results:  results,
		Verified: creds.HunterKey != "",
		Provider: creds.Provider,
	}, nil
}

func (uc *BulkDispatchUseCase) processLead(ctx context.Context, lead LeadInput, creds *ResolvedCredentials, sender EmailSender) DispatchResult {
	validation := ValidateLead(lead)
	if !validation.Valid {
		return DispatchResult{
			Email:  lead.Email,
			Status: StatusError,
			Error:  strings.Join(validation.Errors, ", "),
		}
	}

	sanitized := validation.Sanitized
	to := sanitized.Email

	name := sanitized.DisplayName
	if name == "" {
		name = sanitized.BusinessName
	}

	// Deliverability check, fail-open: only an explicit undeliverable
	// verdict skips the send.
	if creds.HunterKey != "" {
		verification, err := uc.Verifier.Verify(ctx, to, creds.HunterKey)
		if err != nil {
			log.Printf("verification error for %s, continuing anyway: %v", to, err)
		} else if !verification.Valid && verification.Result == hunter.ResultUndeliverable {
			return DispatchResult{
				Email:        to,
				Status:       StatusSkipped,
				Error:        "Email undeliverable (Hunter.io)",
				Verification: verification,
			}
		}
	}

	if err := uc.LeadRepo.Upsert(ctx, &entity.Lead{
		Email:        to,
		BusinessName: sanitized.BusinessName,
		Location:     sanitized.Location,
		Notes:        sanitized.Notes,
		Status:       sanitized.Status,
	}); err != nil {
		log.Printf("lead upsert failed for %s: %v", to, err)
		return DispatchResult{Email: to, Status: StatusError, Error: "Database error"}
	}

	html, err := mail.BuildOutreachHTML(name, sanitized.Location, uc.AppURL, to)
	if err != nil {
		return DispatchResult{Email: to, Status: StatusError, Error: err.Error()}
	}

	sendResult, err := sender.Send(ctx, mail.OutreachMessage{
		To:      to,
		From:    creds.SendFrom,
		Subject: mail.OutreachSubject,
		HTML:    html,
	})
	if err != nil {
		log.Printf("send error for %s: %v", to, err)
		return DispatchResult{Email: to, Status: StatusError, Error: err.Error()}
	}

	// Best-effort bookkeeping: the mail is out, so a failure past this
	// point is logged but the lead stays sent. The gap between a
	// delivered email and a missing sent event is accepted, not retried.
	if err := uc.EventRepo.Insert(ctx, entity.NewEmailEvent(to, entity.EventTypeSent, entity.EventMetadata{})); err != nil {
		log.Printf("failed to record sent event for %s: %v", to, err)
	}

	if err := uc.LeadRepo.UpdateLastContacted(ctx, to, time.Now()); err != nil {
		log.Printf("failed to update last_contacted for %s: %v", to, err)
	}

	if uc.Queue != nil && creds.ApolloKey != "" {
		if err := uc.Queue.PublishEnrichment(ctx, queue.EnrichmentPayload{
			Email:     to,
			ApolloKey: creds.ApolloKey,
			Origin:    "BULK_SEND",
		}); err != nil {
			log.Printf("failed to queue enrichment for %s: %v", to, err)
		}
	}

	return DispatchResult{Email: to, Status: StatusSent, Provider: sendResult.Provider}
}
