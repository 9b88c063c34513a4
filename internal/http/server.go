// Package http exposes the ledger, analytics, and advice operations as a
// JSON API. It is thin plumbing: handlers decode input, call an engine, and
// return its result or mapped error verbatim.
package http

import (
	"net/http"

	"fintrack/internal/advice"
	"fintrack/internal/analytics"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

type Server struct {
	http.Server

	ledger    *services.LedgerService
	analytics *analytics.Service
	advisor   *advice.Orchestrator
}

// NewServer wires routes and tracing middleware. advisor may be nil when no
// generator is configured; advice requests then fail with 503.
func NewServer(addr string, ledgerSvc *services.LedgerService, analyticsSvc *analytics.Service, advisor *advice.Orchestrator) *Server {
	s := &Server{
		ledger:    ledgerSvc,
		analytics: analyticsSvc,
		advisor:   advisor,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /transactions/", s.handleCreateTransaction)
	mux.HandleFunc("GET /transactions/", s.handleListTransactions)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /summary/", s.handleSummary)

	mux.HandleFunc("POST /budget-goals/", s.handleSetBudgetGoal)
	mux.HandleFunc("GET /budget-goals/", s.handleListBudgetGoals)

	mux.HandleFunc("GET /analytics/spending-trends/", s.handleSpendingTrends)
	mux.HandleFunc("GET /analytics/budget-performance/", s.handleBudgetPerformance)

	mux.HandleFunc("POST /ai-advice/", s.handleAdvice)

	tracer := trace.NewMiddleware()
	s.Addr = addr
	s.Handler = tracer.Middleware(mux)

	return s
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "AI Personal Finance Tracker API",
		"version": Version,
	})
}
