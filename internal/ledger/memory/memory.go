// Package memory provides an in-process ledger store, used as the default
// backend for local development and as the store under test for the engines
// and handlers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	txs    []core.Transaction
	goals  []core.BudgetGoal

	// now is injectable so tests can pin created_at.
	now func() time.Time
}

func New() *Store {
	return &Store{nextID: 1, now: time.Now}
}

// NewWithClock returns a store whose created_at stamps come from the given
// clock.
func NewWithClock(now func() time.Time) *Store {
	return &Store{nextID: 1, now: now}
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	t.CreatedAt = s.now()
	s.nextID++
	s.txs = append(s.txs, t)
	return t.ID, nil
}

func (s *Store) ListTransactions(_ context.Context, owner string, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.txs {
		if t.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) UpsertBudgetGoal(_ context.Context, g core.BudgetGoal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, have := range s.goals {
		if have.Owner == g.Owner && have.Category == g.Category && have.Month == g.Month && have.Year == g.Year {
			g.ID = have.ID
			s.goals[i] = g
			return nil
		}
	}
	g.ID = s.nextID
	s.nextID++
	s.goals = append(s.goals, g)
	return nil
}

func (s *Store) ListBudgetGoals(_ context.Context, owner string, month, year int) ([]core.BudgetGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.BudgetGoal
	for _, g := range s.goals {
		if g.Owner != owner {
			continue
		}
		if month != 0 && year != 0 && (g.Month != month || g.Year != year) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) ListTransactionsSince(_ context.Context, owner string, from core.Date) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs {
		if t.Owner == owner && !t.Date.Before(from.Time) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) ExpenseTotalsByCategory(_ context.Context, owner string, month, year int) (map[string]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := make(map[string]core.Money)
	for _, t := range s.txs {
		if t.Owner != owner || t.Kind != core.Expense {
			continue
		}
		if int(t.Date.Month()) != month || t.Date.Year() != year {
			continue
		}
		sum := totals[t.Category]
		sum.Cents += t.Amount.Cents
		totals[t.Category] = sum
	}
	return totals, nil
}
