package resend

import (
	"context"
	"fmt"

	"github.com/cryptokey/dashboard-api/internal/config"
	resendsdk "github.com/resend/resend-go/v2"
)

// Mailer delivers transactional email through the Resend API.
type Mailer struct {
	client *resendsdk.Client
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		client: resendsdk.NewClient(cfg.ResendAPIKey),
		from:   cfg.EmailFrom,
	}
}

// Send delivers one HTML email and returns the provider's message id.
// Failures are returned to the caller as-is; retries are not attempted here.
func (m *Mailer) Send(ctx context.Context, to, subject, html string) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resendsdk.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
