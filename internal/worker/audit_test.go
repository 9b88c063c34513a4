package worker

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

type stubGetter struct {
	tx   core.Transaction
	err  error
	gets int
}

func (s *stubGetter) GetTransaction(context.Context, int64) (core.Transaction, error) {
	s.gets++
	return s.tx, s.err
}

func TestHandleEvent_Created(t *testing.T) {
	store := &stubGetter{tx: core.Transaction{ID: 7, Owner: "alice", Kind: core.Expense, Category: "food"}}
	w := NewAuditWorker(store)

	err := w.HandleEvent(context.Background(), amqp.NewLedgerEventMessage(7, amqp.ActionCreated, "alice"))
	if err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if store.gets != 1 {
		t.Errorf("GetTransaction called %d times, want 1", store.gets)
	}
}

func TestHandleEvent_CreatedRowAlreadyGone(t *testing.T) {
	store := &stubGetter{err: core.ErrNotFound}
	w := NewAuditWorker(store)

	// A race with a delete must be acknowledged, not requeued.
	if err := w.HandleEvent(context.Background(), amqp.NewLedgerEventMessage(7, amqp.ActionCreated, "alice")); err != nil {
		t.Errorf("HandleEvent = %v, want nil", err)
	}
}

func TestHandleEvent_StoreFailure(t *testing.T) {
	wantErr := errors.New("db locked")
	store := &stubGetter{err: wantErr}
	w := NewAuditWorker(store)

	err := w.HandleEvent(context.Background(), amqp.NewLedgerEventMessage(7, amqp.ActionCreated, "alice"))
	if !errors.Is(err, wantErr) {
		t.Errorf("HandleEvent = %v, want wrapped %v", err, wantErr)
	}
}

func TestHandleEvent_Deleted(t *testing.T) {
	store := &stubGetter{}
	w := NewAuditWorker(store)

	if err := w.HandleEvent(context.Background(), amqp.NewLedgerEventMessage(7, amqp.ActionDeleted, "alice")); err != nil {
		t.Errorf("HandleEvent = %v, want nil", err)
	}
	if store.gets != 0 {
		t.Errorf("deleted event fetched the row %d times", store.gets)
	}
}

func TestHandleEvent_UnknownAction(t *testing.T) {
	w := NewAuditWorker(&stubGetter{})
	if err := w.HandleEvent(context.Background(), amqp.NewLedgerEventMessage(7, "archived", "alice")); err != nil {
		t.Errorf("HandleEvent = %v, want nil for unknown action", err)
	}
}
