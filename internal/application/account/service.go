package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/cryptokey/dashboard-api/internal/infrastructure/identity"
)

type userStore interface {
	Put(ctx context.Context, u *domain.UserRecord) error
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)
}

type dispatcher interface {
	Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error)
}

type tokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

// AuthResult carries the session token and record returned by register/login.
type AuthResult struct {
	Record *domain.UserRecord
	Bearer string
}

type Service interface {
	Register(ctx context.Context, req domain.CreateAccountRequest) (*AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error)
}

type service struct {
	provider   identity.Provider
	users      userStore
	dispatcher dispatcher
	signer     tokenSigner
}

func NewService(provider identity.Provider, users userStore, d dispatcher, signer tokenSigner) Service {
	return &service{provider: provider, users: users, dispatcher: d, signer: signer}
}

// Register creates the account with the identity provider, writes the
// initial user record, and fires the welcome email. The welcome send is
// fire-and-forget: its failure is logged and never fails the registration.
func (s *service) Register(ctx context.Context, req domain.CreateAccountRequest) (*AuthResult, error) {
	acct, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	rec := &domain.UserRecord{
		UserID:        acct.UserID,
		Email:         acct.Email,
		RegisteredAt:  time.Now().UTC(),
		Status:        domain.StatusPendingWalletCreation,
		LastEmailSent: nil,
	}
	if err := s.users.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("write user record: %w", err)
	}

	if _, err := s.dispatcher.Send(ctx, rec.Email, domain.KindWelcome, rec.UserID); err != nil {
		slog.Warn("welcome email failed", "user_id", rec.UserID, "err", err)
	}

	bearer, err := s.signer.Sign(rec.UserID, rec.Email, roleFor(rec.Email))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Record: rec, Bearer: bearer}, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error) {
	acct, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	rec, err := s.users.Get(ctx, acct.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user record: %w", err)
	}
	bearer, err := s.signer.Sign(rec.UserID, rec.Email, roleFor(rec.Email))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Record: rec, Bearer: bearer}, nil
}

// roleFor derives the role from the one hard-coded admin address. Roles are
// not stored on the record.
func roleFor(email string) string {
	if email == domain.AdminEmail {
		return "admin"
	}
	return "user"
}
