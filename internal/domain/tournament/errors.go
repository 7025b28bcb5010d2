package tournament

import (
	"errors"

	"github.com/okian/swissround/internal/domain/pairing"
)

// Input validation errors. The caller may retry with corrected input.
var (
	ErrDuplicateName       = errors.New("competitor names must be unique")
	ErrEmptyName           = errors.New("competitor name must not be empty")
	ErrInsufficientPlayers = errors.New("at least two competitors are required")
	ErrInvalidRoundCount   = errors.New("round count must be greater than zero")
)

// Workflow errors raised by out-of-order state machine calls.
var (
	ErrNoPlayers               = errors.New("competitors have not been confirmed")
	ErrTournamentInProgress    = errors.New("tournament already started")
	ErrResultsNotConfirmed     = errors.New("results of the current round are not confirmed")
	ErrNoActiveRound           = errors.New("no round is awaiting results")
	ErrResultsAlreadyConfirmed = errors.New("results of the current round are already confirmed")
	ErrIncompleteResults       = errors.New("every match needs an outcome")
	ErrInvalidOutcome          = errors.New("outcome cannot be chosen for a match")
)

// Kind returns a short label for err, used in metrics and API error codes.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, ErrEmptyName):
		return "empty_name"
	case errors.Is(err, ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, ErrInvalidRoundCount):
		return "invalid_round_count"
	case errors.Is(err, pairing.ErrValidation):
		return "invalid_pairing"
	case errors.Is(err, ErrNoPlayers):
		return "no_players"
	case errors.Is(err, ErrTournamentInProgress):
		return "tournament_in_progress"
	case errors.Is(err, ErrResultsNotConfirmed):
		return "results_not_confirmed"
	case errors.Is(err, ErrNoActiveRound):
		return "no_active_round"
	case errors.Is(err, ErrResultsAlreadyConfirmed):
		return "results_already_confirmed"
	case errors.Is(err, ErrIncompleteResults):
		return "incomplete_results"
	case errors.Is(err, ErrInvalidOutcome):
		return "invalid_outcome"
	default:
		return "unknown"
	}
}

// IsInputError reports whether err was caused by bad input rather than by
// calling an operation in the wrong phase.
func IsInputError(err error) bool {
	switch Kind(err) {
	case "duplicate_name", "empty_name", "insufficient_players", "invalid_round_count",
		"invalid_pairing", "incomplete_results", "invalid_outcome":
		return true
	}
	return false
}
