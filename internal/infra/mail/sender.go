package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender is the single outbound-email capability. The SMTP relay and the
// SendGrid API implementation are interchangeable behind it: same
// success/failure contract, provider name echoed back for observability.
type Sender interface {
	Send(ctx context.Context, msg OutreachMessage) (*SendResult, error)
}

const (
	gmailSMTPHost = "smtp.gmail.com"
	gmailSMTPPort = 587
)

// SMTPSender relays through Gmail with a sender address and app password.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewSMTPSender(user, appPassword string) *SMTPSender {
	return &SMTPSender{
		Host:     gmailSMTPHost,
		Port:     gmailSMTPPort,
		User:     user,
		Password: appPassword,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg OutreachMessage) (*SendResult, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp send failed: %w", err)
	}

	return &SendResult{Sent: true, Provider: "gmail"}, nil
}

// NewSender picks the implementation for a resolved provider. The
// orchestrator only ever sees the Sender interface.
func NewSender(provider, from, appPassword, sendgridKey string) (Sender, error) {
	switch provider {
	case "sendgrid":
		return NewSendGridSender(sendgridKey), nil
	case "gmail":
		return NewSMTPSender(from, appPassword), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", provider)
	}
}
