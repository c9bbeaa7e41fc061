package usecase

import (
	"context"

	"github.com/peterw/leadreach/internal/infra/integration/hunter"
	"github.com/peterw/leadreach/internal/infra/mail"
)

// EmailVerifier is the deliverability check. Implementations fail open:
// when the provider is unreachable they answer valid rather than error.
type EmailVerifier interface {
	Verify(ctx context.Context, email, apiKey string) (*hunter.VerificationResult, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg mail.OutreachMessage) (*mail.SendResult, error)
}

// SenderFactory builds the sender for one request's resolved credentials.
type SenderFactory func(creds *ResolvedCredentials) (EmailSender, error)

// Throttler paces outbound volume between leads. The interval is a
// rate-shaping contract (at most one send per interval), not an
// incidental wait, so it runs on every terminal path including errors.
type Throttler interface {
	Wait(ctx context.Context) error
}
