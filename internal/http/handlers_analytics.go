package http

import (
	"net/http"
)

type summaryResponse struct {
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	NetBalance         float64            `json:"net_balance"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	SavingsRate        float64            `json:"savings_rate"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analytics.Summary(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	byCategory := make(map[string]float64, len(summary.ExpensesByCategory))
	for cat, amount := range summary.ExpensesByCategory {
		byCategory[cat] = amount.Float()
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:        summary.TotalIncome.Float(),
		TotalExpenses:      summary.TotalExpenses.Float(),
		NetBalance:         summary.NetBalance.Float(),
		ExpensesByCategory: byCategory,
		SavingsRate:        summary.SavingsRate,
	})
}

type monthlyTrendResponse struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type categoryTrendResponse struct {
	Category         string  `json:"category"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	AvgAmount        float64 `json:"avg_amount"`
}

type dailyPatternResponse struct {
	DayOfWeek   int     `json:"day_of_week"`
	AvgSpending float64 `json:"avg_spending"`
}

func (s *Server) handleSpendingTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := s.analytics.Trends(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	monthly := make([]monthlyTrendResponse, 0, len(trends.MonthlyTrends))
	for _, m := range trends.MonthlyTrends {
		monthly = append(monthly, monthlyTrendResponse{
			Month:    m.Month,
			Income:   m.Income.Float(),
			Expenses: m.Expenses.Float(),
		})
	}

	categories := make([]categoryTrendResponse, 0, len(trends.CategoryTrends))
	for _, c := range trends.CategoryTrends {
		categories = append(categories, categoryTrendResponse{
			Category:         c.Category,
			TotalAmount:      c.TotalAmount.Float(),
			TransactionCount: c.TransactionCount,
			AvgAmount:        c.AvgAmount.Float(),
		})
	}

	daily := make([]dailyPatternResponse, 0, len(trends.DailyPatterns))
	for _, d := range trends.DailyPatterns {
		daily = append(daily, dailyPatternResponse{
			DayOfWeek:   int(d.Weekday),
			AvgSpending: d.AvgSpending.Float(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"monthly_trends":  monthly,
		"category_trends": categories,
		"daily_patterns":  daily,
	})
}

type budgetPerformanceEntryResponse struct {
	Category       string  `json:"category"`
	Budget         float64 `json:"budget"`
	Actual         float64 `json:"actual"`
	Difference     float64 `json:"difference"`
	PercentageUsed float64 `json:"percentage_used"`
	Status         string  `json:"status"`
}

func (s *Server) handleBudgetPerformance(w http.ResponseWriter, r *http.Request) {
	// Absent month/year default to the current period inside the engine.
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)

	perf, err := s.analytics.BudgetPerformance(r.Context(), ownerFromRequest(r), month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries := make([]budgetPerformanceEntryResponse, 0, len(perf.Entries))
	for _, e := range perf.Entries {
		entries = append(entries, budgetPerformanceEntryResponse{
			Category:       e.Category,
			Budget:         e.Budget.Float(),
			Actual:         e.Actual.Float(),
			Difference:     e.Difference.Float(),
			PercentageUsed: e.PercentageUsed,
			Status:         e.Status,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"budget_performance": entries,
		"total_budget":       perf.TotalBudget.Float(),
		"total_spent":        perf.TotalSpent.Float(),
		"overall_status":     perf.OverallStatus,
	})
}
