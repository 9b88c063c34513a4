package advice

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request carries the caller-supplied material for one advice call. The
// transaction records keep their arbitrary key/value shape; they are embedded
// verbatim in the prompt, not interpreted.
type Request struct {
	Transactions []map[string]any
	BudgetGoals  map[string]float64
	UserContext  string
}

// BuildPrompt renders the structured advisory prompt for the generator.
func BuildPrompt(req Request) (string, error) {
	txJSON, err := json.MarshalIndent(req.Transactions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}

	goals := "No budget goals set"
	if len(req.BudgetGoals) > 0 {
		goalJSON, err := json.MarshalIndent(req.BudgetGoals, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal budget goals: %w", err)
		}
		goals = string(goalJSON)
	}

	userContext := req.UserContext
	if strings.TrimSpace(userContext) == "" {
		userContext = "No additional context provided"
	}

	return fmt.Sprintf(`You are a professional financial advisor. Analyze the following financial data and provide personalized advice.

TRANSACTION DATA:
%s

BUDGET GOALS:
%s

USER CONTEXT:
%s

Please provide:
1. Overall financial health assessment
2. Spending pattern analysis
3. Specific recommendations for improvement
4. Budget suggestions
5. Savings opportunities
6. Warning about any concerning trends

Keep the advice practical, actionable, and encouraging. Format your response in a clear, easy-to-read manner.`,
		txJSON, goals, userContext), nil
}
