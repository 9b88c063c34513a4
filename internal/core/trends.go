package core

import (
	"math"
	"sort"
	"time"
)

type (
	// MonthlyTrend is one year-month bucket with income and expenses summed
	// separately.
	MonthlyTrend struct {
		Month    string // YYYY-MM
		Income   Money
		Expenses Money
	}

	// CategoryTrend aggregates recent expenses for one category.
	CategoryTrend struct {
		Category         string
		TotalAmount      Money
		TransactionCount int
		AvgAmount        Money
	}

	// DailyPattern is the average expense amount for one day of the week.
	// Weekday follows time.Weekday: 0 is Sunday.
	DailyPattern struct {
		Weekday     time.Weekday
		AvgSpending Money
	}
)

// MonthlyTrends buckets transactions of the last 6 months by calendar month.
// Months with no activity in the window are omitted, not zero-filled. The
// result is ordered by month ascending.
func MonthlyTrends(txs []Transaction, now time.Time) []MonthlyTrend {
	cutoff := dayStart(now.AddDate(0, -6, 0))

	buckets := make(map[string]*MonthlyTrend)
	for _, t := range txs {
		if t.Date.Before(cutoff) {
			continue
		}
		key := t.Date.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyTrend{Month: key}
			buckets[key] = b
		}
		switch t.Kind {
		case Income:
			b.Income.Cents += t.Amount.Cents
		case Expense:
			b.Expenses.Cents += t.Amount.Cents
		}
	}

	out := make([]MonthlyTrend, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryTrends aggregates expenses of the last 30 days per category:
// total, transaction count, and average amount. Ordered by total descending;
// ties keep the order categories first appeared in the input.
func CategoryTrends(txs []Transaction, now time.Time) []CategoryTrend {
	cutoff := dayStart(now.AddDate(0, 0, -30))

	index := make(map[string]int)
	var out []CategoryTrend
	for _, t := range txs {
		if t.Kind != Expense || t.Date.Before(cutoff) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTrend{Category: t.Category})
		}
		out[i].TotalAmount.Cents += t.Amount.Cents
		out[i].TransactionCount++
	}

	for i := range out {
		out[i].AvgAmount.Cents = roundedDiv(out[i].TotalAmount.Cents, int64(out[i].TransactionCount))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount.Cents > out[j].TotalAmount.Cents
	})
	return out
}

// DailyPatterns computes the average expense amount per day of the week over
// the last 30 days. Weekdays with no expenses are omitted. Ordered by
// weekday index ascending, Sunday first.
func DailyPatterns(txs []Transaction, now time.Time) []DailyPattern {
	cutoff := dayStart(now.AddDate(0, 0, -30))

	var totals [7]int64
	var counts [7]int64
	for _, t := range txs {
		if t.Kind != Expense || t.Date.Before(cutoff) {
			continue
		}
		wd := t.Date.Weekday()
		totals[wd] += t.Amount.Cents
		counts[wd]++
	}

	var out []DailyPattern
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		out = append(out, DailyPattern{
			Weekday:     wd,
			AvgSpending: Money{Cents: roundedDiv(totals[wd], counts[wd])},
		})
	}
	return out
}

// dayStart truncates to the calendar day in UTC. Transaction dates carry no
// time of day, so window cutoffs must not either; a row dated exactly on the
// cutoff day is inside the window.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// roundedDiv divides cents by n with half-up rounding. n must be positive.
func roundedDiv(cents, n int64) int64 {
	if n == 0 {
		return 0
	}
	return int64(math.Round(float64(cents) / float64(n)))
}
