// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/swissround/internal/adapters/repository"
	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/tournament"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TournamentDependencies
	RoundDependencies
	StandingsDependencies
	ArchiveDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	tournamentHandler *TournamentHandler
	roundsHandler     *RoundsHandler
	standingsHandler  *StandingsHandler
	archiveHandler    *ArchiveHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxArchiveLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		tournamentHandler: NewTournamentHandler(deps),
		roundsHandler:     NewRoundsHandler(deps),
		standingsHandler:  NewStandingsHandler(deps),
		archiveHandler:    NewArchiveHandler(deps, maxArchiveLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/tournament", MetricsMiddleware(s.tournamentHandler.HandleTournament, "tournament"))
	mux.HandleFunc("/tournament/pairings", MetricsMiddleware(s.tournamentHandler.HandlePairings, "pairings"))
	mux.HandleFunc("/rounds/next", MetricsMiddleware(s.roundsHandler.HandleNext, "rounds_next"))
	mux.HandleFunc("/rounds/current", MetricsMiddleware(s.roundsHandler.HandleCurrent, "rounds_current"))
	mux.HandleFunc("/rounds/results", MetricsMiddleware(s.roundsHandler.HandleResults, "rounds_results"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleStandings, "standings"))
	mux.HandleFunc("/ledger", MetricsMiddleware(s.standingsHandler.HandleLedger, "ledger"))
	mux.HandleFunc("/export", MetricsMiddleware(s.standingsHandler.HandleExport, "export"))
	mux.HandleFunc("/archive", MetricsMiddleware(s.archiveHandler.HandleList, "archive"))
	mux.HandleFunc("/archive/", MetricsMiddleware(s.archiveHandler.HandleGet, "archive_get"))
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

// writeDomainError maps tournament errors to a status: bad input is 400,
// calls made in the wrong phase are 409.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case tournament.IsInputError(err), errors.Is(err, ledger.ErrUnknownOutcome):
		writeError(w, http.StatusBadRequest, kindOf(err), err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrDisabled):
		writeError(w, http.StatusNotFound, "archive_disabled", err)
	case tournament.Kind(err) != "unknown":
		writeError(w, http.StatusConflict, tournament.Kind(err), err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func kindOf(err error) string {
	if errors.Is(err, ledger.ErrUnknownOutcome) {
		return "invalid_outcome"
	}
	return tournament.Kind(err)
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}
