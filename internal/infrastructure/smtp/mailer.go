package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/cryptokey/dashboard-api/internal/config"
)

// Mailer sends email over plain SMTP. Used in development setups where no
// Resend API key is configured (e.g. against Mailpit on :1025).
type Mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.EmailFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// Send delivers one HTML email. SMTP has no message id to report, so the
// provider id is always empty. net/smtp has no context support; cancellation
// is inherited from the connection defaults.
func (m *Mailer) Send(_ context.Context, to, subject, html string) (string, error) {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, html)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return "", smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
