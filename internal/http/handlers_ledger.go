package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// amountField decodes a money amount given either as a JSON number (25.50)
// or as a decimal string ("25.50", "25,50").
type amountField struct {
	Cents int64
}

func (a *amountField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		cents, err := core.ParseDecimalToCents(s)
		if err != nil {
			return err
		}
		a.Cents = cents
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	cents, err := core.CentsFromFloat(f)
	if err != nil {
		return err
	}
	a.Cents = cents
	return nil
}

type transactionInput struct {
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

type transactionResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        string(t.Kind),
		Category:    t.Category,
		Amount:      t.Amount.Float(),
		Description: t.Description,
		Date:        t.Date.String(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in transactionInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	date, err := core.ParseDate(in.Date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx := core.Transaction{
		Owner:       ownerFromRequest(r),
		Kind:        core.TransactionKind(in.Type),
		Category:    in.Category,
		Amount:      core.Money{Cents: in.Amount.Cents},
		Description: in.Description,
		Date:        date,
	}

	id, err := s.ledger.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Transaction created successfully",
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", ledger.DefaultListLimit)

	txs, err := s.ledger.ListTransactions(r.Context(), ownerFromRequest(r), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid transaction id", core.ErrValidation))
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id, ownerFromRequest(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Transaction deleted successfully",
	})
}

type budgetGoalInput struct {
	Category string      `json:"category"`
	Amount   amountField `json:"amount"`
	Month    int         `json:"month"`
	Year     int         `json:"year"`
}

type budgetGoalResponse struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

func (s *Server) handleSetBudgetGoal(w http.ResponseWriter, r *http.Request) {
	var in budgetGoalInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	goal := core.BudgetGoal{
		Owner:    ownerFromRequest(r),
		Category: in.Category,
		Amount:   core.Money{Cents: in.Amount.Cents},
		Month:    in.Month,
		Year:     in.Year,
	}

	if err := s.ledger.SetBudgetGoal(r.Context(), goal); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Budget goal set successfully",
	})
}

func (s *Server) handleListBudgetGoals(w http.ResponseWriter, r *http.Request) {
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)

	goals, err := s.ledger.ListBudgetGoals(r.Context(), ownerFromRequest(r), month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]budgetGoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, budgetGoalResponse{
			ID:       g.ID,
			Category: g.Category,
			Amount:   g.Amount.Float(),
			Month:    g.Month,
			Year:     g.Year,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
