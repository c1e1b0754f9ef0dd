package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Identity-provider error taxonomy. Provider error codes are collapsed into
// this closed set; anything unmapped propagates as-is.
var (
	ErrEmailInUse     = errors.New("an account with this email already exists")
	ErrWeakCredential = errors.New("password should be at least 6 characters")
)
