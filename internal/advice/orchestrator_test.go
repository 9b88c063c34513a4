package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestAdvise_ReturnsGeneratorText(t *testing.T) {
	gen := &stubGenerator{text: "spend less on takeout"}
	o := NewOrchestrator(gen, time.Second)

	got, err := o.Advise(context.Background(), Request{UserContext: "help"})
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if got != "spend less on takeout" {
		t.Errorf("got %q", got)
	}
}

func TestAdvise_FailureIsOpaque(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded for key sk-123")}
	o := NewOrchestrator(gen, time.Second)

	_, err := o.Advise(context.Background(), Request{})
	if !errors.Is(err, core.ErrAdviceGeneration) {
		t.Fatalf("err = %v, want ErrAdviceGeneration", err)
	}
	if err.Error() != core.ErrAdviceGeneration.Error() {
		t.Errorf("provider detail leaked: %q", err)
	}
}

func TestAdvise_EmptyTextIsFailure(t *testing.T) {
	gen := &stubGenerator{text: "   \n"}
	o := NewOrchestrator(gen, time.Second)

	if _, err := o.Advise(context.Background(), Request{}); !errors.Is(err, core.ErrAdviceGeneration) {
		t.Errorf("err = %v, want ErrAdviceGeneration", err)
	}
}

func TestAdvise_CachesIdenticalPayloads(t *testing.T) {
	gen := &stubGenerator{text: "save more"}
	o := NewOrchestrator(gen, time.Second)
	ctx := context.Background()
	req := Request{
		Transactions: []map[string]any{{"category": "food", "amount": 25.50}},
		BudgetGoals:  map[string]float64{"food": 300},
	}

	for i := 0; i < 3; i++ {
		if _, err := o.Advise(ctx, req); err != nil {
			t.Fatalf("Advise %d: %v", i, err)
		}
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (cache)", gen.calls)
	}

	// A different payload misses the cache.
	req.UserContext = "saving for a house"
	if _, err := o.Advise(ctx, req); err != nil {
		t.Fatalf("Advise changed payload: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestAdvise_FailuresAreNotCached(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	o := NewOrchestrator(gen, time.Second)
	ctx := context.Background()

	o.Advise(ctx, Request{})
	o.Advise(ctx, Request{})
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 (no caching of failures)", gen.calls)
	}
}
