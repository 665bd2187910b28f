package mailer

import (
	"context"
	"errors"
	"fmt"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"starcast/internal/bootstrap/config"
	"starcast/internal/errs"
	"starcast/internal/ports"
)

// ErrNotConfigured is returned when no SendGrid API key is set.
var ErrNotConfigured = errors.New("mailer is not configured")

type SendGrid struct {
	apiKey string
	from   string
}

var _ ports.Mailer = (*SendGrid)(nil)

func NewSendGrid(cfg config.AlertsConfig) *SendGrid {
	return &SendGrid{
		apiKey: cfg.SendGridAPIKey,
		from:   cfg.FromAddress,
	}
}

func (s *SendGrid) Send(ctx context.Context, to, subject, htmlBody string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.apiKey == "" {
		return ErrNotConfigured
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("Starcast", s.from),
		subject,
		mail.NewEmail("", to),
		htmlBody,
		htmlBody,
	)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return errs.Wrap(err, "send email")
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
