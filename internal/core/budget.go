package core

// Budget status flags.
const (
	StatusWithinBudget = "within_budget"
	StatusOverBudget   = "over_budget"
)

type (
	// BudgetPerformanceEntry compares one category's goal against its actual
	// spend for the period.
	BudgetPerformanceEntry struct {
		Category       string
		Budget         Money
		Actual         Money
		Difference     Money   // budget minus actual, negative when over
		PercentageUsed float64 // 0 when the budget itself is 0
		Status         string
	}

	// BudgetPerformance is the period-wide comparison of goals vs spending.
	BudgetPerformance struct {
		Entries       []BudgetPerformanceEntry
		TotalBudget   Money
		TotalSpent    Money
		OverallStatus string
	}
)

// ComputeBudgetPerformance compares the period's goals against actual expense
// sums per category. Entries cover goal categories only; actuals for
// categories without a goal still count toward TotalSpent.
func ComputeBudgetPerformance(goals []BudgetGoal, actuals map[string]Money) BudgetPerformance {
	perf := BudgetPerformance{Entries: make([]BudgetPerformanceEntry, 0, len(goals))}

	for _, g := range goals {
		actual := actuals[g.Category]
		entry := BudgetPerformanceEntry{
			Category:   g.Category,
			Budget:     g.Amount,
			Actual:     actual,
			Difference: Money{Cents: g.Amount.Cents - actual.Cents},
			Status:     StatusWithinBudget,
		}
		if g.Amount.Cents > 0 {
			entry.PercentageUsed = actual.Float() / g.Amount.Float() * 100
		}
		if actual.Cents > g.Amount.Cents {
			entry.Status = StatusOverBudget
		}
		perf.Entries = append(perf.Entries, entry)
		perf.TotalBudget.Cents += g.Amount.Cents
	}

	for _, actual := range actuals {
		perf.TotalSpent.Cents += actual.Cents
	}

	perf.OverallStatus = StatusWithinBudget
	if perf.TotalSpent.Cents > perf.TotalBudget.Cents {
		perf.OverallStatus = StatusOverBudget
	}
	return perf
}
