package analytics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
)

var anchor = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return anchor }

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func seed(t *testing.T, store *memory.Store, kind core.TransactionKind, category string, cents int64, date string) {
	t.Helper()
	_, err := store.InsertTransaction(context.Background(), core.Transaction{
		Owner:    "alice",
		Kind:     kind,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Date:     mustDate(t, date),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestSummary(t *testing.T) {
	store := memory.New()
	seed(t, store, core.Income, "salary", 100000, "2024-06-01")
	seed(t, store, core.Expense, "food", 15000, "2024-06-03")
	seed(t, store, core.Expense, "rent", 10000, "2024-06-05")

	svc := NewService(store, fixedClock)
	sum, err := svc.Summary(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if sum.TotalIncome.Cents != 100000 {
		t.Errorf("TotalIncome = %d, want 100000", sum.TotalIncome.Cents)
	}
	if sum.TotalExpenses.Cents != 25000 {
		t.Errorf("TotalExpenses = %d, want 25000", sum.TotalExpenses.Cents)
	}
	if sum.NetBalance.Cents != 75000 {
		t.Errorf("NetBalance = %d, want 75000", sum.NetBalance.Cents)
	}
	if math.Abs(sum.SavingsRate-75.0) > 1e-9 {
		t.Errorf("SavingsRate = %v, want 75.0", sum.SavingsRate)
	}
	if sum.ExpensesByCategory["food"].Cents != 15000 {
		t.Errorf("food = %d, want 15000", sum.ExpensesByCategory["food"].Cents)
	}
}

func TestSummary_IgnoresOtherOwners(t *testing.T) {
	store := memory.New()
	seed(t, store, core.Income, "salary", 100000, "2024-06-01")

	svc := NewService(store, fixedClock)
	sum, err := svc.Summary(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalIncome.Cents != 0 || sum.TotalExpenses.Cents != 0 {
		t.Errorf("empty owner got %+v", sum)
	}
}

func TestTrends(t *testing.T) {
	store := memory.New()
	// Two monthly buckets inside the 6-month window, one outside.
	seed(t, store, core.Expense, "food", 5000, "2024-05-01")
	seed(t, store, core.Expense, "food", 3000, "2024-06-03") // Monday, also in 30-day window
	seed(t, store, core.Expense, "rent", 90000, "2023-11-01")
	// Two Sundays for the daily pattern average.
	seed(t, store, core.Expense, "fun", 1000, "2024-06-02")
	seed(t, store, core.Expense, "fun", 3000, "2024-06-09")

	svc := NewService(store, fixedClock)
	trends, err := svc.Trends(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}

	months := make(map[string]int64)
	for _, m := range trends.MonthlyTrends {
		months[m.Month] = m.Expenses.Cents
	}
	if months["2024-05"] != 5000 {
		t.Errorf("2024-05 expenses = %d, want 5000", months["2024-05"])
	}
	if months["2024-06"] != 7000 {
		t.Errorf("2024-06 expenses = %d, want 7000", months["2024-06"])
	}
	if _, ok := months["2023-11"]; ok {
		t.Error("month outside the 6-month window present")
	}

	cats := make(map[string]int64)
	for _, c := range trends.CategoryTrends {
		cats[c.Category] = c.TotalAmount.Cents
	}
	if cats["food"] != 3000 {
		t.Errorf("food 30-day total = %d, want 3000", cats["food"])
	}
	if cats["fun"] != 4000 {
		t.Errorf("fun 30-day total = %d, want 4000", cats["fun"])
	}

	var sunday *core.DailyPattern
	for i := range trends.DailyPatterns {
		if trends.DailyPatterns[i].Weekday == time.Sunday {
			sunday = &trends.DailyPatterns[i]
		}
	}
	if sunday == nil {
		t.Fatal("no Sunday pattern")
	}
	if sunday.AvgSpending.Cents != 2000 {
		t.Errorf("Sunday average = %d, want 2000", sunday.AvgSpending.Cents)
	}
}

func TestTrends_CutoffDayIncluded(t *testing.T) {
	store := memory.New()
	// Dated exactly 30 days before the anchor; the noon clock on the anchor
	// must not push it out of the window.
	seed(t, store, core.Expense, "food", 4000, "2024-05-11")

	svc := NewService(store, fixedClock)
	trends, err := svc.Trends(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(trends.CategoryTrends) != 1 || trends.CategoryTrends[0].TotalAmount.Cents != 4000 {
		t.Errorf("CategoryTrends = %+v, want the cutoff-day expense", trends.CategoryTrends)
	}
	if len(trends.DailyPatterns) != 1 {
		t.Errorf("DailyPatterns = %+v, want the cutoff-day entry", trends.DailyPatterns)
	}
}

func TestBudgetPerformance_ExplicitPeriod(t *testing.T) {
	store := memory.New()
	seed(t, store, core.Expense, "food", 25000, "2024-01-10")
	if err := store.UpsertBudgetGoal(context.Background(), core.BudgetGoal{
		Owner: "alice", Category: "food", Amount: core.Money{Cents: 30000}, Month: 1, Year: 2024,
	}); err != nil {
		t.Fatalf("upsert goal: %v", err)
	}

	svc := NewService(store, fixedClock)
	perf, err := svc.BudgetPerformance(context.Background(), "alice", 1, 2024)
	if err != nil {
		t.Fatalf("BudgetPerformance: %v", err)
	}
	if len(perf.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(perf.Entries))
	}
	if perf.Entries[0].Status != core.StatusWithinBudget {
		t.Errorf("status = %q, want %q", perf.Entries[0].Status, core.StatusWithinBudget)
	}
	if perf.TotalSpent.Cents != 25000 {
		t.Errorf("TotalSpent = %d, want 25000", perf.TotalSpent.Cents)
	}
}

func TestBudgetPerformance_DefaultsToCurrentMonth(t *testing.T) {
	store := memory.New()
	seed(t, store, core.Expense, "food", 5000, "2024-06-05")
	seed(t, store, core.Expense, "food", 9000, "2024-05-05")
	if err := store.UpsertBudgetGoal(context.Background(), core.BudgetGoal{
		Owner: "alice", Category: "food", Amount: core.Money{Cents: 10000}, Month: 6, Year: 2024,
	}); err != nil {
		t.Fatalf("upsert goal: %v", err)
	}

	svc := NewService(store, fixedClock)
	perf, err := svc.BudgetPerformance(context.Background(), "alice", 0, 0)
	if err != nil {
		t.Fatalf("BudgetPerformance: %v", err)
	}
	// The clock pins June 2024, so only the June spend counts.
	if perf.TotalSpent.Cents != 5000 {
		t.Errorf("TotalSpent = %d, want 5000", perf.TotalSpent.Cents)
	}
	if len(perf.Entries) != 1 || perf.Entries[0].Actual.Cents != 5000 {
		t.Errorf("entries = %+v", perf.Entries)
	}
}

type failingStore struct {
	*memory.Store
	err error
}

func (f *failingStore) ListTransactionsSince(context.Context, string, core.Date) ([]core.Transaction, error) {
	return nil, f.err
}

func TestTrends_StoreFailure(t *testing.T) {
	wantErr := errors.New("disk gone")
	svc := NewService(&failingStore{Store: memory.New(), err: wantErr}, fixedClock)

	_, err := svc.Trends(context.Background(), "alice")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}
