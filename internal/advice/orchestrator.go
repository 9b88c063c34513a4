package advice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
)

const (
	cacheSize = 64
	cacheTTL  = 10 * time.Minute
)

// Orchestrator builds the prompt, bounds the generator call with a timeout,
// and surfaces every generator failure as the single opaque
// core.ErrAdviceGeneration. It performs no retries; retrying is the caller's
// call since the failure is transient by contract.
type Orchestrator struct {
	gen     Generator
	timeout time.Duration
	cache   *cache.LRUCache[string]
}

func NewOrchestrator(gen Generator, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		gen:     gen,
		timeout: timeout,
		cache:   cache.NewLRUCache[string](cacheSize, cacheTTL),
	}
}

// Cache exposes the response cache for cleanup registration.
func (o *Orchestrator) Cache() *cache.LRUCache[string] {
	return o.cache
}

// Advise returns the generator's text for the given payload. Identical
// payloads within the cache TTL are answered from cache; the advice text is
// opaque, so serving a recent copy is safe.
func (o *Orchestrator) Advise(ctx context.Context, req Request) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build advice prompt", "error", err)
		return "", core.ErrAdviceGeneration
	}

	key := promptKey(prompt)
	if text, ok := o.cache.Get(key); ok {
		slog.DebugContext(ctx, "Advice served from cache")
		return text, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	text, err := o.gen.Generate(genCtx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "Advice generation failed",
			"error", err,
			"transactions", len(req.Transactions),
			"goals", len(req.BudgetGoals))
		return "", core.ErrAdviceGeneration
	}
	if strings.TrimSpace(text) == "" {
		slog.ErrorContext(ctx, "Advice generator returned empty text")
		return "", core.ErrAdviceGeneration
	}

	o.cache.Set(key, text)
	return text, nil
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
