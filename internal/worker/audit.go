// Package worker consumes ledger change events and records them as a
// structured audit log. It is a downstream consumer: losing it never affects
// the ledger itself.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type AuditWorker struct {
	store ledger.TransactionGetter
}

func NewAuditWorker(store ledger.TransactionGetter) *AuditWorker {
	return &AuditWorker{store: store}
}

// HandleEvent processes a single ledger event. For created events the full
// row is fetched so the audit line carries the amounts; a row already deleted
// again is logged and acknowledged rather than requeued forever.
func (w *AuditWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	switch msg.Action {
	case amqp.ActionCreated:
		tx, err := w.store.GetTransaction(ctx, msg.ID)
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Audited transaction no longer exists",
				"id", msg.ID,
				"owner", msg.Owner)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get transaction for audit: %w", err)
		}

		slog.InfoContext(ctx, "Ledger audit: transaction created",
			"id", tx.ID,
			"owner", tx.Owner,
			"kind", tx.Kind,
			"category", tx.Category,
			"amount_cents", tx.Amount.Cents,
			"date", tx.Date.String(),
			"event_time", msg.Timestamp)
		return nil

	case amqp.ActionDeleted:
		slog.InfoContext(ctx, "Ledger audit: transaction deleted",
			"id", msg.ID,
			"owner", msg.Owner,
			"event_time", msg.Timestamp)
		return nil

	default:
		slog.WarnContext(ctx, "Unknown ledger event action",
			"id", msg.ID,
			"action", msg.Action)
		return nil
	}
}
