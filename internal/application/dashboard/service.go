package dashboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

// WelcomeResendWindow is how long after registration a manual welcome
// re-send is still allowed.
const WelcomeResendWindow = 24 * time.Hour

// Caller identifies who is asking. Built from verified JWT claims by the
// transport layer; no ambient current-user state anywhere.
type Caller struct {
	UserID string
	Email  string
}

func (c Caller) IsAdmin() bool { return c.Email == domain.AdminEmail }

type userStore interface {
	ListAll(ctx context.Context) ([]domain.UserRecord, error)
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
}

type dispatcher interface {
	Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error)
}

type emailLog interface {
	ListByUser(ctx context.Context, userID string) ([]domain.DeliveryReceipt, error)
}

type Service interface {
	// List returns all records sorted by registration time descending for
	// the admin, and exactly the caller's own record for everyone else.
	List(ctx context.Context, caller Caller) ([]domain.UserRecord, error)
	// ResendWelcome re-sends the welcome email to a recently registered
	// user. Returns sent=false without error when the idempotency guard
	// suppressed a same-day duplicate.
	ResendWelcome(ctx context.Context, caller Caller, email string) (sent bool, err error)
	// Emails returns the send history for a user, newest first. The admin
	// may view anyone's; everyone else only their own.
	Emails(ctx context.Context, caller Caller, userID string) ([]domain.DeliveryReceipt, error)
}

type service struct {
	users      userStore
	log        emailLog
	dispatcher dispatcher
	now        func() time.Time
}

func NewService(users userStore, log emailLog, d dispatcher) Service {
	return &service{users: users, log: log, dispatcher: d, now: time.Now}
}

func (s *service) List(ctx context.Context, caller Caller) ([]domain.UserRecord, error) {
	if !caller.IsAdmin() {
		rec, err := s.users.Get(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		return []domain.UserRecord{*rec}, nil
	}
	records, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RegisteredAt.After(records[j].RegisteredAt)
	})
	return records, nil
}

func (s *service) ResendWelcome(ctx context.Context, caller Caller, email string) (bool, error) {
	if !caller.IsAdmin() {
		return false, fmt.Errorf("admin only: %w", domain.ErrForbidden)
	}
	rec, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	now := s.now()
	if !EligibleForWelcomeResend(rec, now) {
		return false, fmt.Errorf("cannot send welcome email to users registered more than 24 hours ago: %w", domain.ErrBadRequest)
	}
	if alreadySent(rec, now) {
		return false, nil
	}
	if _, err := s.dispatcher.Send(ctx, rec.Email, domain.KindWelcome, rec.UserID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) Emails(ctx context.Context, caller Caller, userID string) ([]domain.DeliveryReceipt, error) {
	if !caller.IsAdmin() && caller.UserID != userID {
		return nil, fmt.Errorf("cannot view another user's send history: %w", domain.ErrForbidden)
	}
	return s.log.ListByUser(ctx, userID)
}

// EligibleForWelcomeResend reports whether the record registered within the
// resend window. The boundary is inclusive: exactly 24h is still eligible.
func EligibleForWelcomeResend(rec *domain.UserRecord, now time.Time) bool {
	return now.Sub(rec.RegisteredAt) <= WelcomeResendWindow
}

// alreadySent suppresses duplicate sends by comparing idempotency keys
// derived from the persisted last_email_sent against one derived from now.
// The key collapses recipient, kind and UTC day, so the guard survives
// process restarts — no session-local sent set.
func alreadySent(rec *domain.UserRecord, now time.Time) bool {
	if rec.LastEmailSent == nil {
		return false
	}
	return sendKey(rec.Email, domain.KindWelcome, *rec.LastEmailSent) == sendKey(rec.Email, domain.KindWelcome, now)
}

func sendKey(email string, kind domain.NotificationKind, at time.Time) string {
	sum := sha256.Sum256([]byte(email + "|" + string(kind) + "|" + at.UTC().Format("2006-01-02")))
	return hex.EncodeToString(sum[:])
}
