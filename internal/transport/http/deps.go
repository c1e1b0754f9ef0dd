package http

import (
	"context"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

// UserRepository is the minimal interface the router requires from the
// user-record store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.UserRecord) error
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	ListAll(ctx context.Context) ([]domain.UserRecord, error)
	SetLastEmailSent(ctx context.Context, userID string, at time.Time) error
}

// EmailLogRepository is the minimal interface the router requires from the
// send-history store.
type EmailLogRepository interface {
	Put(ctx context.Context, receipt *domain.DeliveryReceipt) error
	ListByUser(ctx context.Context, userID string) ([]domain.DeliveryReceipt, error)
}
