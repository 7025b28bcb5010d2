// Package types contains the read models shared by the service and the API.
package types

import (
	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/standings"
)

// Phase is the state of the round state machine.
type Phase string

// Phases.
const (
	PhaseIdle             Phase = "idle"
	PhasePaired           Phase = "paired"
	PhaseResultsConfirmed Phase = "results_confirmed"
	PhaseCompleted        Phase = "completed"
)

// Board is one line of the current round: a pairing or the bye.
type Board struct {
	Number  int    `json:"board"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Result  string `json:"result,omitempty"`
	Bye     bool   `json:"bye,omitempty"`
	Repeat  bool   `json:"repeat,omitempty"`
}

// Round is the pairing list of a round plus anyone who sat it out.
type Round struct {
	Number    int      `json:"round"`
	Boards    []Board  `json:"boards"`
	Unpaired  []string `json:"unpaired,omitempty"`
	Confirmed bool     `json:"confirmed"`
}

// Advance is what a round advance produced: a new round, or the final
// standings when the tournament is over.
type Advance struct {
	Completed bool                `json:"completed"`
	Round     *Round              `json:"round,omitempty"`
	Final     *standings.Snapshot `json:"final,omitempty"`
}

// Summary describes the tournament as a whole.
type Summary struct {
	ID            string   `json:"id"`
	Phase         Phase    `json:"phase"`
	Round         int      `json:"round"`
	TotalRounds   int      `json:"total_rounds"`
	Competitors   []string `json:"competitors"`
	ManualPlanned bool     `json:"manual_pairings_planned"`
	LedgerEntries int      `json:"ledger_entries"`
}

// Record is the exportable history of a tournament: every ledger row and the
// standings at the time it was taken.
type Record struct {
	ID          string             `json:"id"`
	TotalRounds int                `json:"total_rounds"`
	Ledger      []ledger.Row       `json:"ledger"`
	Standings   standings.Snapshot `json:"standings"`
}
