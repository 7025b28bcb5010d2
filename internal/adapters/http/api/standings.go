package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/standings"
)

// StandingsDependencies defines the interface for read models and export.
type StandingsDependencies interface {
	Standings(ctx context.Context) standings.Snapshot
	Ledger(ctx context.Context) []ledger.Row
	ExportCSV(ctx context.Context) (string, []byte, error)
}

// StandingsHandler handles standings, ledger and export requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleStandings handles GET /standings.
func (h *StandingsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Standings(r.Context()))
}

// HandleLedger handles GET /ledger.
func (h *StandingsHandler) HandleLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Ledger(r.Context()))
}

// HandleExport handles GET /export and serves the CSV as an attachment.
func (h *StandingsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	name, data, err := h.deps.ExportCSV(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
