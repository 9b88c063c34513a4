package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
)

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, id int64, action, owner string) error {
	p.events = append(p.events, action)
	return p.err
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func sampleTx(t *testing.T) core.Transaction {
	t.Helper()
	return core.Transaction{
		Owner:    "alice",
		Kind:     core.Expense,
		Category: "food",
		Amount:   core.Money{Cents: 2500},
		Date:     mustDate(t, "2024-06-01"),
	}
}

func TestCreateTransaction_PublishesAfterPersist(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	id, err := svc.CreateTransaction(context.Background(), sampleTx(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("id not assigned")
	}
	if len(pub.events) != 1 || pub.events[0] != amqp.ActionCreated {
		t.Errorf("events = %v, want [created]", pub.events)
	}
}

func TestCreateTransaction_InvalidNeverPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewLedgerService(memory.New(), pub)

	bad := sampleTx(t)
	bad.Category = ""
	if _, err := svc.CreateTransaction(context.Background(), bad); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("events published for a rejected write: %v", pub.events)
	}
}

func TestCreateTransaction_PublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewLedgerService(memory.New(), pub)

	if _, err := svc.CreateTransaction(context.Background(), sampleTx(t)); err != nil {
		t.Errorf("create = %v, want nil despite publish failure", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	pub := &recordingPublisher{}
	store := memory.New()
	svc := NewLedgerService(store, pub)
	ctx := context.Background()

	id, _ := svc.CreateTransaction(ctx, sampleTx(t))
	if err := svc.DeleteTransaction(ctx, id, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 2 || pub.events[1] != amqp.ActionDeleted {
		t.Errorf("events = %v, want [created deleted]", pub.events)
	}

	pub.events = nil
	if err := svc.DeleteTransaction(ctx, id, "alice"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("events published for a failed delete: %v", pub.events)
	}
}

func TestNilPublisher(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	if _, err := svc.CreateTransaction(context.Background(), sampleTx(t)); err != nil {
		t.Errorf("create with nil publisher: %v", err)
	}
}
