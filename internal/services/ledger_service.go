// Package services coordinates ledger writes with event publication.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// EventPublisher is the outbound side of the AMQP client. Nil is a valid
// publisher; events are then skipped.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, id int64, action, owner string) error
}

// LedgerService owns transaction and goal mutations: persist first, then
// publish a best-effort change event. A failed publish is logged, never
// surfaced, since the ledger write already committed.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{store: store, publisher: publisher}
}

// CreateTransaction validates and persists the transaction, then publishes a
// created event.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	id, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return 0, err
	}

	s.publishEvent(ctx, id, amqp.ActionCreated, t.Owner)
	return id, nil
}

// DeleteTransaction removes the row by id and publishes a deleted event.
// Returns core.ErrNotFound when no row exists.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64, owner string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, id, amqp.ActionDeleted, owner)
	return nil
}

// SetBudgetGoal inserts or replaces the goal for its period key.
func (s *LedgerService) SetBudgetGoal(ctx context.Context, g core.BudgetGoal) error {
	return s.store.UpsertBudgetGoal(ctx, g)
}

func (s *LedgerService) ListTransactions(ctx context.Context, owner string, limit int) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, owner, limit)
}

func (s *LedgerService) ListBudgetGoals(ctx context.Context, owner string, month, year int) ([]core.BudgetGoal, error) {
	return s.store.ListBudgetGoals(ctx, owner, month, year)
}

func (s *LedgerService) publishEvent(ctx context.Context, id int64, action, owner string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, id, action, owner); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"id", id,
			"action", action,
			"error", err)
	}
}

// Close releases the store and publisher when they hold resources.
func (s *LedgerService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if closer, ok := s.publisher.(io.Closer); ok && s.publisher != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
