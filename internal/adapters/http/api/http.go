// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tcorrea/cartoart/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// ResolveQuery resolves a single (name, club, position) triple.
	ResolveQuery(ctx context.Context, name, clubLabel, rawPosition string) types.ResolveAnswer

	// SetRoster parses, enriches and stores an uploaded picks CSV.
	SetRoster(ctx context.Context, r io.Reader) (int, []string, error)

	// Lineup returns the stored roster after enrichment.
	Lineup(ctx context.Context) types.Lineup

	// RefreshAll triggers the market and valuation refreshes.
	RefreshAll(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	rosterHandler  *RosterHandler
	lineupHandler  *LineupHandler
	resolveHandler *ResolveHandler
	refreshHandler *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		rosterHandler:  NewRosterHandler(deps),
		lineupHandler:  NewLineupHandler(deps),
		resolveHandler: NewResolveHandler(deps),
		refreshHandler: NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandlePostRoster, "roster"))
	mux.HandleFunc("/lineup", MetricsMiddleware(s.lineupHandler.HandleGetLineup, "lineup"))
	mux.HandleFunc("/resolve", MetricsMiddleware(s.resolveHandler.HandlePostResolve, "resolve"))
	mux.HandleFunc("/market/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "market_refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
