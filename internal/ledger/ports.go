package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for ledger storage adapters. The store is the only shared mutable
// state in the system; engines and handlers go through these interfaces and
// never mutate rows directly.
type (
	TransactionWriter interface {
		// InsertTransaction validates, assigns id and created_at, and
		// persists the transaction. Returns the assigned id.
		InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
	}

	TransactionLister interface {
		// ListTransactions returns the owner's transactions ordered by date
		// descending, ties broken by created_at descending, truncated to
		// limit. The result is a snapshot, not a live view.
		ListTransactions(ctx context.Context, owner string, limit int) ([]core.Transaction, error)
	}

	TransactionDeleter interface {
		// DeleteTransaction removes a row by id. Returns core.ErrNotFound
		// when no row exists.
		DeleteTransaction(ctx context.Context, id int64) error
	}

	TransactionGetter interface {
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	}

	GoalWriter interface {
		// UpsertBudgetGoal inserts or atomically replaces the goal keyed by
		// (owner, category, month, year).
		UpsertBudgetGoal(ctx context.Context, g core.BudgetGoal) error
	}

	GoalLister interface {
		// ListBudgetGoals filters by period when both month and year are
		// non-zero, otherwise returns all goals for the owner.
		ListBudgetGoals(ctx context.Context, owner string, month, year int) ([]core.BudgetGoal, error)
	}

	// HistoryReader feeds the trend engine with transactions on or after a
	// cutoff date.
	HistoryReader interface {
		ListTransactionsSince(ctx context.Context, owner string, from core.Date) ([]core.Transaction, error)
	}

	// SpendingReader feeds the budget performance engine with per-category
	// expense sums for one calendar month.
	SpendingReader interface {
		ExpenseTotalsByCategory(ctx context.Context, owner string, month, year int) (map[string]core.Money, error)
	}
)

// Store is the full ledger contract, satisfied by the SQLite repository and
// the in-memory store.
type Store interface {
	TransactionWriter
	TransactionLister
	TransactionDeleter
	TransactionGetter
	GoalWriter
	GoalLister
	HistoryReader
	SpendingReader
}

// DefaultListLimit bounds ListTransactions when the caller does not supply a
// limit.
const DefaultListLimit = 100
