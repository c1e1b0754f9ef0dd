// Package reconcile closes the gap between wallet-status changes and status
// notification emails.
package reconcile

import (
	"context"
	"log/slog"

	"github.com/cryptokey/dashboard-api/internal/domain"
)

type dispatcher interface {
	Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error)
}

// Watcher consumes full-collection snapshots and dispatches a status email
// for every record that reached a terminal status without being notified.
//
// Semantics are at-least-once: the only guard is the persisted
// last_email_sent timestamp, so two snapshots arriving before the receipt
// write lands will both trigger a send. That is accepted behavior, not a
// race to paper over — there is no cross-snapshot deduplication here.
type Watcher struct {
	dispatcher dispatcher
}

func NewWatcher(d dispatcher) *Watcher {
	return &Watcher{dispatcher: d}
}

// Run processes snapshots until ctx is cancelled or the channel closes.
// Dispatch failures are logged and never stop the loop.
func (w *Watcher) Run(ctx context.Context, snapshots <-chan []domain.UserRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case records, ok := <-snapshots:
			if !ok {
				return
			}
			w.process(ctx, records)
		}
	}
}

func (w *Watcher) process(ctx context.Context, records []domain.UserRecord) {
	for i := range records {
		rec := &records[i]
		if !NeedsStatusEmail(rec) {
			continue
		}
		kind, ok := domain.KindForStatus(rec.Status)
		if !ok {
			continue
		}
		if _, err := w.dispatcher.Send(ctx, rec.Email, kind, rec.UserID); err != nil {
			slog.Error("status email dispatch failed", "user_id", rec.UserID, "status", rec.Status, "err", err)
			continue
		}
		slog.Info("status email sent", "user_id", rec.UserID, "status", rec.Status)
	}
}

// NeedsStatusEmail is the reconciliation guard: the record is in a terminal
// status and last_email_sent is absent or predates registration. The
// comparison is against registered_at, not the time the status last changed,
// so a record that was emailed once is never re-notified on a later status
// flip — long-standing behavior, kept as-is.
func NeedsStatusEmail(rec *domain.UserRecord) bool {
	if !rec.TerminalStatus() {
		return false
	}
	return rec.LastEmailSent == nil || rec.LastEmailSent.Before(rec.RegisteredAt)
}
