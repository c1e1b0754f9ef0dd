package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/cryptokey/dashboard-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type credentialStore interface {
	Put(ctx context.Context, c *domain.Credential) error
	Get(ctx context.Context, email string) (*domain.Credential, error)
}

// LocalProvider stores bcrypt credential hashes in the document store.
// Development stand-in for the hosted provider; selected when no identity
// API key is configured.
type LocalProvider struct {
	creds credentialStore
}

func NewLocalProvider(creds credentialStore) *LocalProvider {
	return &LocalProvider{creds: creds}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*Account, error) {
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakCredential
	}
	if _, err := p.creds.Get(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := &domain.Credential{
		Email:        email,
		UserID:       id.New(),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.creds.Put(ctx, c); err != nil {
		return nil, err
	}
	return &Account{UserID: c.UserID, Email: email}, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Account, error) {
	c, err := p.creds.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return &Account{UserID: c.UserID, Email: c.Email}, nil
}
