package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peterw/leadreach/internal/entity"
	"github.com/peterw/leadreach/internal/infra/integration/hunter"
	"github.com/peterw/leadreach/internal/infra/mail"
	"github.com/peterw/leadreach/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateLastContacted(ctx context.Context, email string, at time.Time) error {
	args := m.Called(ctx, email, at)
	return args.Error(0)
}

func (m *MockLeadRepository) ApplyEnrichment(ctx context.Context, email, businessName, location, notes string) error {
	args := m.Called(ctx, email, businessName, location, notes)
	return args.Error(0)
}

// MockEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, event *entity.EmailEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, email, apiKey string) (*hunter.VerificationResult, error) {
	args := m.Called(ctx, email, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hunter.VerificationResult), args.Error(1)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.OutreachMessage) (*mail.SendResult, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.SendResult), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEnrichment(ctx context.Context, payload queue.EnrichmentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// countingThrottler stands in for the inter-lead delay.
type countingThrottler struct {
	waits int
}

func (t *countingThrottler) Wait(ctx context.Context) error {
	t.waits++
	return nil
}

func newTestUseCase(leadRepo *MockLeadRepository, eventRepo *MockEventRepository, verifier *MockVerifier, sender *MockSender, throttle *countingThrottler) *BulkDispatchUseCase {
	return &BulkDispatchUseCase{
		LeadRepo:  leadRepo,
		EventRepo: eventRepo,
		Verifier:  verifier,
		Senders: func(creds *ResolvedCredentials) (EmailSender, error) {
			return sender, nil
		},
		Throttle: throttle,
		Env: EnvCredentials{
			SendFrom:    "peter@example.com",
			AppPassword: "app-password",
		},
		AppURL: "https://leadreach.example.com",
	}
}

func TestBulkDispatchHappyPath(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	leadRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	leadRepo.On("UpdateLastContacted", ctx, "a@b.com", mock.Anything).Return(nil)
	eventRepo.On("Insert", ctx, mock.Anything).Return(nil)
	sender.On("Send", ctx, mock.Anything).Return(&mail.SendResult{Sent: true, Provider: "gmail"}, nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
	})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "a@b.com", output.Results[0].Email)
	assert.Equal(t, StatusSent, output.Results[0].Status)
	assert.Equal(t, "gmail", output.Results[0].Provider)
	assert.Equal(t, "gmail", output.Provider)
	assert.False(t, output.Verified)

	// No key configured, so verification never runs.
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)

	// One sent event, one last_contacted update, one throttle wait.
	eventRepo.AssertCalled(t, "Insert", ctx, mock.MatchedBy(func(e *entity.EmailEvent) bool {
		return e.LeadEmail == "a@b.com" && e.EventType == entity.EventTypeSent
	}))
	leadRepo.AssertCalled(t, "UpdateLastContacted", ctx, "a@b.com", mock.Anything)
	assert.Equal(t, 1, throttle.waits)
}

func TestBulkDispatchInvalidEmailSkipsStore(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{{Email: "not-an-email", BusinessName: "Acme"}},
	})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "not-an-email", output.Results[0].Email)
	assert.Equal(t, StatusError, output.Results[0].Status)
	assert.Contains(t, output.Results[0].Error, "Invalid email format")

	leadRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	eventRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Equal(t, 1, throttle.waits)
}

func TestBulkDispatchBatchBounds(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(new(MockLeadRepository), new(MockEventRepository), new(MockVerifier), new(MockSender), &countingThrottler{})

	_, err := uc.Execute(ctx, BulkDispatchInput{})
	require.Error(t, err)
	assert.Equal(t, CodeNoLeads, DomainErrorCode(err))

	leads := make([]LeadInput, MaxLeadsPerBatch+1)
	for i := range leads {
		leads[i] = LeadInput{Email: "a@b.com", BusinessName: "Acme"}
	}
	_, err = uc.Execute(ctx, BulkDispatchInput{Leads: leads})
	require.Error(t, err)
	assert.Equal(t, CodeTooManyLeads, DomainErrorCode(err))
}

func TestBulkDispatchUndeliverableSkipsSend(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	verifier.On("Verify", ctx, "a@b.com", "hunter-key").Return(&hunter.VerificationResult{
		Valid:    false,
		Result:   hunter.ResultUndeliverable,
		Provider: "hunter",
	}, nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads:       []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
		Credentials: &RequestCredentials{HunterKey: "hunter-key"},
	})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, StatusSkipped, output.Results[0].Status)
	assert.Equal(t, "Email undeliverable (Hunter.io)", output.Results[0].Error)
	assert.True(t, output.Verified)

	leadRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestBulkDispatchVerificationFailsOpen(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	// Provider unreachable: the client reports valid with provider "error".
	verifier.On("Verify", ctx, "a@b.com", "hunter-key").Return(&hunter.VerificationResult{
		Valid:    true,
		Provider: "error",
	}, nil)
	leadRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	leadRepo.On("UpdateLastContacted", ctx, "a@b.com", mock.Anything).Return(nil)
	eventRepo.On("Insert", ctx, mock.Anything).Return(nil)
	sender.On("Send", ctx, mock.Anything).Return(&mail.SendResult{Sent: true, Provider: "gmail"}, nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads:       []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
		Credentials: &RequestCredentials{HunterKey: "hunter-key"},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Results[0].Status)
}

func TestBulkDispatchPartialFailure(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	leadRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	leadRepo.On("UpdateLastContacted", ctx, mock.Anything, mock.Anything).Return(nil)
	eventRepo.On("Insert", ctx, mock.Anything).Return(nil)

	sender.On("Send", ctx, mock.MatchedBy(func(msg mail.OutreachMessage) bool {
		return msg.To == "first@example.com"
	})).Return(nil, errors.New("smtp send failed: connection refused"))
	sender.On("Send", ctx, mock.MatchedBy(func(msg mail.OutreachMessage) bool {
		return msg.To == "second@example.com"
	})).Return(&mail.SendResult{Sent: true, Provider: "gmail"}, nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{
			{Email: "first@example.com", BusinessName: "First"},
			{Email: "second@example.com", BusinessName: "Second"},
		},
	})

	require.NoError(t, err)
	require.Len(t, output.Results, 2)

	// Input order preserved; one failure never aborts the batch.
	assert.Equal(t, "first@example.com", output.Results[0].Email)
	assert.Equal(t, StatusError, output.Results[0].Status)
	assert.Equal(t, "second@example.com", output.Results[1].Email)
	assert.Equal(t, StatusSent, output.Results[1].Status)

	// Throttled after the failing lead too.
	assert.Equal(t, 2, throttle.waits)
}

func TestBulkDispatchDatabaseErrorPerLead(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	leadRepo.On("Upsert", ctx, mock.Anything).Return(errors.New("connection reset"))

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusError, output.Results[0].Status)
	assert.Equal(t, "Database error", output.Results[0].Error)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestBulkDispatchEventLogFailureKeepsSent(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	throttle := &countingThrottler{}

	leadRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	leadRepo.On("UpdateLastContacted", ctx, "a@b.com", mock.Anything).Return(nil)
	eventRepo.On("Insert", ctx, mock.Anything).Return(errors.New("insert failed"))
	sender.On("Send", ctx, mock.Anything).Return(&mail.SendResult{Sent: true, Provider: "sendgrid"}, nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
	})

	// The mail already went out; a bookkeeping failure must not demote it.
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Results[0].Status)
}

func TestBulkDispatchMissingCredentials(t *testing.T) {
	ctx := context.Background()

	uc := newTestUseCase(new(MockLeadRepository), new(MockEventRepository), new(MockVerifier), new(MockSender), &countingThrottler{})
	uc.Env = EnvCredentials{}

	_, err := uc.Execute(ctx, BulkDispatchInput{
		Leads: []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
	})

	require.Error(t, err)
	assert.Equal(t, CodeMissingCredentials, DomainErrorCode(err))
}

func TestBulkDispatchPublishesEnrichment(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	eventRepo := new(MockEventRepository)
	verifier := new(MockVerifier)
	sender := new(MockSender)
	publisher := new(MockPublisher)
	throttle := &countingThrottler{}

	leadRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	leadRepo.On("UpdateLastContacted", ctx, "a@b.com", mock.Anything).Return(nil)
	eventRepo.On("Insert", ctx, mock.Anything).Return(nil)
	sender.On("Send", ctx, mock.Anything).Return(&mail.SendResult{Sent: true, Provider: "gmail"}, nil)
	publisher.On("PublishEnrichment", ctx, mock.MatchedBy(func(p queue.EnrichmentPayload) bool {
		return p.Email == "a@b.com" && p.ApolloKey == "apollo-key"
	})).Return(nil)

	uc := newTestUseCase(leadRepo, eventRepo, verifier, sender, throttle)
	uc.Queue = publisher

	output, err := uc.Execute(ctx, BulkDispatchInput{
		Leads:       []LeadInput{{Email: "a@b.com", BusinessName: "Acme"}},
		Credentials: &RequestCredentials{ApolloKey: "apollo-key"},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Results[0].Status)
	publisher.AssertExpectations(t)
}
