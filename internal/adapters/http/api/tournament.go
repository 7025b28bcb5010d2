package api

import (
	"context"
	"net/http"

	"github.com/okian/swissround/internal/domain/types"
)

// TournamentDependencies defines the interface for roster and setup operations.
type TournamentDependencies interface {
	ConfirmPlayers(ctx context.Context, names []string, rounds int) (types.Summary, error)
	SetManualPairings(ctx context.Context, pairs [][2]string) (types.Summary, error)
	Summary(ctx context.Context) types.Summary
	Reset(ctx context.Context) types.Summary
}

type confirmRequest struct {
	Names  []string `json:"names"`
	Rounds int      `json:"rounds"`
}

type pairingsRequest struct {
	Pairs [][2]string `json:"pairs"`
}

// TournamentHandler handles tournament setup requests.
type TournamentHandler struct {
	deps TournamentDependencies
}

// NewTournamentHandler creates a new tournament handler.
func NewTournamentHandler(deps TournamentDependencies) *TournamentHandler {
	return &TournamentHandler{deps: deps}
}

// HandleTournament handles GET, POST and DELETE /tournament.
func (h *TournamentHandler) HandleTournament(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Summary(r.Context()))
	case http.MethodPost:
		var req confirmRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		sum, err := h.deps.ConfirmPlayers(r.Context(), req.Names, req.Rounds)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sum)
	case http.MethodDelete:
		writeJSON(w, http.StatusOK, h.deps.Reset(r.Context()))
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// HandlePairings handles POST /tournament/pairings.
func (h *TournamentHandler) HandlePairings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req pairingsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	sum, err := h.deps.SetManualPairings(r.Context(), req.Pairs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
