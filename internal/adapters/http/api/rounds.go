package api

import (
	"context"
	"net/http"

	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/types"
)

// RoundDependencies defines the interface for round operations.
type RoundDependencies interface {
	AdvanceRound(ctx context.Context) (types.Advance, error)
	CurrentRound(ctx context.Context) types.Round
	ConfirmResults(ctx context.Context, outcomes []ledger.Outcome) (types.Round, error)
}

// resultsRequest carries one outcome per board in board order, using the
// wire names player1, player2 and double_loss.
type resultsRequest struct {
	Outcomes []string `json:"outcomes"`
}

// RoundsHandler handles round requests.
type RoundsHandler struct {
	deps RoundDependencies
}

// NewRoundsHandler creates a new rounds handler.
func NewRoundsHandler(deps RoundDependencies) *RoundsHandler {
	return &RoundsHandler{deps: deps}
}

// HandleNext handles POST /rounds/next.
func (h *RoundsHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	adv, err := h.deps.AdvanceRound(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adv)
}

// HandleCurrent handles GET /rounds/current.
func (h *RoundsHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CurrentRound(r.Context()))
}

// HandleResults handles POST /rounds/results.
func (h *RoundsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req resultsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	outcomes := make([]ledger.Outcome, len(req.Outcomes))
	for i, s := range req.Outcomes {
		o, err := ledger.ParseOutcome(s)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		outcomes[i] = o
	}
	round, err := h.deps.ConfirmResults(r.Context(), outcomes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}
