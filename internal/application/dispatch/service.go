package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/cryptokey/dashboard-api/internal/pkg/id"
)

// Mailer is the transport behind the dispatcher. Implemented by the Resend
// client in production and the SMTP mailer in development.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (providerID string, err error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	SetLastEmailSent(ctx context.Context, userID string, at time.Time) error
}

type emailLog interface {
	Put(ctx context.Context, receipt *domain.DeliveryReceipt) error
}

type Service interface {
	// Send renders the fixed template for kind and delivers it. userID may be
	// empty, in which case the record is located by recipient email for the
	// receipt write. Delivery failure is surfaced; receipt persistence
	// failure never is.
	Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error)
	// SendRaw forwards caller-supplied subject and HTML verbatim to the
	// email API, bypassing templates and receipt writes.
	SendRaw(ctx context.Context, to, subject, html string) (string, error)
}

type service struct {
	mailer   Mailer
	userRepo userStore
	log      emailLog
}

func NewService(mailer Mailer, userRepo userStore, log emailLog) Service {
	return &service{mailer: mailer, userRepo: userRepo, log: log}
}

func (s *service) Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid notification kind %q: %w", kind, domain.ErrBadRequest)
	}
	subject, html, err := render(kind, recipient)
	if err != nil {
		return nil, err
	}
	providerID, err := s.mailer.Send(ctx, recipient, subject, html)
	if err != nil {
		return nil, fmt.Errorf("send %s email: %w", kind, err)
	}

	receipt := &domain.DeliveryReceipt{
		ReceiptID:  id.New(),
		UserID:     userID,
		Recipient:  recipient,
		Kind:       kind,
		ProviderID: providerID,
		SentAt:     time.Now().UTC(),
	}
	s.recordReceipt(ctx, receipt)
	return receipt, nil
}

func (s *service) SendRaw(ctx context.Context, to, subject, html string) (string, error) {
	return s.mailer.Send(ctx, to, subject, html)
}

// recordReceipt stamps last_email_sent on the user record and appends to the
// email log. Both writes are best-effort: the email is already out, so a
// failed write is logged and swallowed rather than turned into a failed send.
func (s *service) recordReceipt(ctx context.Context, receipt *domain.DeliveryReceipt) {
	if receipt.UserID == "" {
		u, err := s.userRepo.GetByEmail(ctx, receipt.Recipient)
		if err != nil {
			slog.Warn("could not match recipient to a user record", "recipient", receipt.Recipient, "err", err)
		} else {
			receipt.UserID = u.UserID
		}
	}
	if receipt.UserID != "" {
		if err := s.userRepo.SetLastEmailSent(ctx, receipt.UserID, receipt.SentAt); err != nil {
			slog.Warn("failed to update last_email_sent", "user_id", receipt.UserID, "err", err)
		}
	}
	if err := s.log.Put(ctx, receipt); err != nil {
		slog.Warn("failed to append email log entry", "receipt_id", receipt.ReceiptID, "err", err)
	}
}
