// Package identity adapts external identity providers to a single closed
// interface. Credential storage and verification belong to the provider;
// this service only consumes the resulting account identity.
package identity

import "context"

// Account is the provider-assigned identity for a registered user.
type Account struct {
	UserID string
	Email  string
}

// Provider creates and verifies accounts. Implementations map provider
// error codes onto the domain taxonomy (ErrEmailInUse, ErrWeakCredential,
// ErrUnauthorized); anything unmapped propagates unchanged.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Account, error)
}
