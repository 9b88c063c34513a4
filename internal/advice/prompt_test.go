package advice

import (
	"strings"
	"testing"
)

func TestBuildPrompt_IncludesAllSections(t *testing.T) {
	prompt, err := BuildPrompt(Request{
		Transactions: []map[string]any{{"category": "food", "amount": 25.50, "type": "expense"}},
		BudgetGoals:  map[string]float64{"food": 300},
		UserContext:  "saving for a trip",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"TRANSACTION DATA:",
		"BUDGET GOALS:",
		"USER CONTEXT:",
		`"category": "food"`,
		`"food": 300`,
		"saving for a trip",
		"financial advisor",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Placeholders(t *testing.T) {
	prompt, err := BuildPrompt(Request{})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "No budget goals set") {
		t.Error("missing budget goals placeholder")
	}
	if !strings.Contains(prompt, "No additional context provided") {
		t.Error("missing user context placeholder")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{
		Transactions: []map[string]any{{"category": "food", "amount": 10.0}},
		BudgetGoals:  map[string]float64{"food": 300, "rent": 900},
		UserContext:  "hi",
	}
	a, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	b, err := BuildPrompt(req)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if a != b {
		t.Error("same payload rendered two different prompts")
	}
}
