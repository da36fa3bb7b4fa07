// Package email sends transactional mail through an external delivery
// service. Only one message exists in this application: the sign-in link.
package email

import (
	"context"
	"fmt"

	"colabatr_backend/platform/config"
)

const subjectSignInLink = "Your Login Link for Colabatr"

// Sender delivers transactional email. Callers are expected to log and
// swallow delivery failures; nothing here retries.
type Sender interface {
	// SendSignInLinkEmail sends a single HTML message containing the
	// magic sign-in link.
	SendSignInLinkEmail(ctx context.Context, toEmail, signInURL string) error
}

// NoopSender is used when email delivery is disabled.
type NoopSender struct{}

// SendSignInLinkEmail does nothing.
func (NoopSender) SendSignInLinkEmail(ctx context.Context, toEmail, signInURL string) error {
	return nil
}

// NewSender selects the delivery implementation from configuration.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case "resend":
		if cfg.GetResendAPIKey() == "" {
			return nil, fmt.Errorf("email provider is resend but RESEND_API_KEY is empty")
		}
		return NewResendSender(cfg.GetResendAPIKey(), cfg.GetEmailFromName(), cfg.GetEmailFromAddress()), nil
	case "smtp":
		if cfg.GetSMTPHost() == "" {
			return nil, fmt.Errorf("email provider is smtp but SMTP_HOST is empty")
		}
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	case "":
		return NoopSender{}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}
