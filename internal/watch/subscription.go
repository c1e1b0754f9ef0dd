// Package watch turns the user-record store into a feed of full-collection
// snapshot events. Each event carries the complete current record set, not a
// diff, so consumers never need a cursor and a restart simply re-delivers
// current state.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

// Lister reads the full user-record collection.
type Lister interface {
	ListAll(ctx context.Context) ([]domain.UserRecord, error)
}

// Subscription polls the store and emits snapshots until its context is
// cancelled. The consumer owns start and stop; a Subscription may be
// restarted by calling Start again with a fresh context.
type Subscription struct {
	lister   Lister
	interval time.Duration
}

func NewSubscription(lister Lister, interval time.Duration) *Subscription {
	return &Subscription{lister: lister, interval: interval}
}

// Start begins polling and returns the snapshot channel. The first snapshot
// is emitted immediately. The channel is closed when ctx is cancelled. Read
// errors are logged and that tick is skipped; the feed itself stays up.
func (s *Subscription) Start(ctx context.Context) <-chan []domain.UserRecord {
	out := make(chan []domain.UserRecord)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			records, err := s.lister.ListAll(ctx)
			if err != nil {
				slog.Warn("snapshot read failed", "err", err)
			} else {
				select {
				case out <- records:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
