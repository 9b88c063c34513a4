package core

// Summary is the aggregate financial picture of a transaction set.
type Summary struct {
	TotalIncome        Money
	TotalExpenses      Money
	NetBalance         Money
	ExpensesByCategory map[string]Money
	SavingsRate        float64 // percent of income kept, 0 when there is no income
}

// Summarize computes a Summary in a single pass over the given transactions.
// The input is expected to be already scoped to one owner and window by the
// caller; an empty input yields all-zero fields and an empty category map.
func Summarize(txs []Transaction) Summary {
	s := Summary{ExpensesByCategory: make(map[string]Money)}

	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.TotalIncome.Cents += t.Amount.Cents
		case Expense:
			s.TotalExpenses.Cents += t.Amount.Cents
			byCat := s.ExpensesByCategory[t.Category]
			byCat.Cents += t.Amount.Cents
			s.ExpensesByCategory[t.Category] = byCat
		}
	}

	s.NetBalance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	if s.TotalIncome.Cents > 0 {
		s.SavingsRate = s.NetBalance.Float() / s.TotalIncome.Float() * 100
	}
	return s
}
