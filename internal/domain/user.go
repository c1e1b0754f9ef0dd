package domain

import "time"

// Wallet provisioning states. The initial state is set at registration;
// transitions to the terminal states happen in the external provisioning
// pipeline, never in this service.
const (
	StatusPendingWalletCreation = "pending_wallet_creation"
	StatusWalletCreated         = "wallet_created"
	StatusError                 = "error"
)

// AdminEmail is the single address with access to the full user list and
// the manual welcome-resend action.
const AdminEmail = "admin@gmail.com"

// UserRecord is one registered identity. The identity provider assigns
// UserID at account creation. LastEmailSent is the only field this service
// mutates after the record is written.
type UserRecord struct {
	UserID        string     `json:"id" dynamodbav:"user_id"`
	Email         string     `json:"email" dynamodbav:"email"`
	RegisteredAt  time.Time  `json:"registered_at" dynamodbav:"registered_at"`
	Status        string     `json:"status" dynamodbav:"status"`
	LastEmailSent *time.Time `json:"last_email_sent,omitempty" dynamodbav:"last_email_sent"`
}

// TerminalStatus reports whether the wallet pipeline has finished with this
// record, successfully or not.
func (u *UserRecord) TerminalStatus() bool {
	return u.Status == StatusWalletCreated || u.Status == StatusError
}

// Credential is a locally stored login secret, used only by the local
// identity provider in development setups.
type Credential struct {
	Email        string    `json:"email" dynamodbav:"email"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
