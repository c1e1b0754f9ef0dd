package domain

import "time"

// NotificationKind selects which fixed email template is rendered.
type NotificationKind string

const (
	KindWelcome       NotificationKind = "welcome"
	KindWalletCreated NotificationKind = "status:wallet_created"
	KindStatusError   NotificationKind = "status:error"
)

// Valid reports whether the kind is one of the known template selectors.
func (k NotificationKind) Valid() bool {
	switch k {
	case KindWelcome, KindWalletCreated, KindStatusError:
		return true
	}
	return false
}

// KindForStatus maps a terminal wallet status to its notification kind.
func KindForStatus(status string) (NotificationKind, bool) {
	switch status {
	case StatusWalletCreated:
		return KindWalletCreated, true
	case StatusError:
		return KindStatusError, true
	}
	return "", false
}

// DeliveryReceipt records one successful send. ProviderID is the email
// provider's message id when the provider returns one.
type DeliveryReceipt struct {
	ReceiptID  string           `json:"id" dynamodbav:"receipt_id"`
	UserID     string           `json:"user_id,omitempty" dynamodbav:"user_id"`
	Recipient  string           `json:"recipient" dynamodbav:"recipient"`
	Kind       NotificationKind `json:"kind" dynamodbav:"kind"`
	ProviderID string           `json:"provider_id,omitempty" dynamodbav:"provider_id"`
	SentAt     time.Time        `json:"sent_at" dynamodbav:"sent_at"`
}
