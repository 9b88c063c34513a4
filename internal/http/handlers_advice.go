package http

import (
	"fmt"
	"net/http"

	"fintrack/internal/advice"
	"fintrack/internal/core"
)

type adviceInput struct {
	Transactions []map[string]any   `json:"transactions"`
	BudgetGoals  map[string]float64 `json:"budget_goals"`
	UserContext  string             `json:"user_context"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "advice generator not configured",
		})
		return
	}

	var in adviceInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}

	text, err := s.advisor.Advise(r.Context(), advice.Request{
		Transactions: in.Transactions,
		BudgetGoals:  in.BudgetGoals,
		UserContext:  in.UserContext,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"advice": text})
}
