// Package analytics runs the read-only aggregation engines against the
// ledger store: summary, spending trends, and budget performance.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Store is the slice of the ledger contract the engines read from.
type Store interface {
	ledger.TransactionLister
	ledger.HistoryReader
	ledger.GoalLister
	ledger.SpendingReader
}

// SpendingTrends bundles the three independent trend aggregations.
type SpendingTrends struct {
	MonthlyTrends  []core.MonthlyTrend
	CategoryTrends []core.CategoryTrend
	DailyPatterns  []core.DailyPattern
}

// Service computes aggregates on demand. It holds no state beyond the store
// handle and a clock, so concurrent calls are safe.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates an analytics service. now anchors every rolling window
// and the default budget period; nil means the system clock.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Summary aggregates the owner's most recent transactions (up to the default
// list limit) into income, expenses, net balance, per-category expenses, and
// savings rate.
func (s *Service) Summary(ctx context.Context, owner string) (core.Summary, error) {
	txs, err := s.store.ListTransactions(ctx, owner, ledger.DefaultListLimit)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load transactions for summary: %w", err)
	}
	return core.Summarize(txs), nil
}

// Trends computes the monthly, category, and day-of-week aggregations over
// their rolling windows. The three are independent and run concurrently; the
// store is only read.
func (s *Service) Trends(ctx context.Context, owner string) (SpendingTrends, error) {
	now := s.now()

	// One fetch covers all three windows: the 6-month cutoff is the widest.
	// Truncated to the calendar day so a row dated exactly on the cutoff day
	// is fetched regardless of the clock's time of day.
	from := now.AddDate(0, -6, 0)
	cutoff := core.NewDate(from.Year(), int(from.Month()), from.Day())
	txs, err := s.store.ListTransactionsSince(ctx, owner, cutoff)
	if err != nil {
		return SpendingTrends{}, fmt.Errorf("load transactions for trends: %w", err)
	}

	var trends SpendingTrends
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		trends.MonthlyTrends = core.MonthlyTrends(txs, now)
		return nil
	})
	g.Go(func() error {
		trends.CategoryTrends = core.CategoryTrends(txs, now)
		return nil
	})
	g.Go(func() error {
		trends.DailyPatterns = core.DailyPatterns(txs, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return SpendingTrends{}, err
	}
	return trends, nil
}

// BudgetPerformance compares the period's goals against actual spending.
// A zero month or year defaults the period to the current calendar month.
func (s *Service) BudgetPerformance(ctx context.Context, owner string, month, year int) (core.BudgetPerformance, error) {
	if month == 0 || year == 0 {
		now := s.now()
		month = int(now.Month())
		year = now.Year()
	}

	var (
		goals   []core.BudgetGoal
		actuals map[string]core.Money
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = s.store.ListBudgetGoals(gctx, owner, month, year)
		if err != nil {
			return fmt.Errorf("load budget goals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		actuals, err = s.store.ExpenseTotalsByCategory(gctx, owner, month, year)
		if err != nil {
			return fmt.Errorf("load actual spending: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.BudgetPerformance{}, err
	}

	return core.ComputeBudgetPerformance(goals, actuals), nil
}
