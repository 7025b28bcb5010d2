// Package ledger keeps the append-only history of every match in a tournament.
package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ByeSlot is the sentinel rendered in place of the missing second player.
const ByeSlot = "BYE"

// Labels rendered for outcomes that have no single winner name.
const (
	DoubleLossLabel = "Double Loss"
	AutoWinLabel    = "Auto Win"
)

// Outcome is the confirmed result of a match. The zero value means unset.
type Outcome int

// Outcomes.
const (
	Unset Outcome = iota
	Player1Wins
	Player2Wins
	DoubleLoss
	AutoWinBye
)

var outcomeNames = map[Outcome]string{
	Unset:       "unset",
	Player1Wins: "player1",
	Player2Wins: "player2",
	DoubleLoss:  "double_loss",
	AutoWinBye:  "bye",
}

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ErrUnknownOutcome is returned by ParseOutcome.
var ErrUnknownOutcome = errors.New("unknown outcome")

// ParseOutcome parses a wire name produced by Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for o, name := range outcomeNames {
		if name == key {
			return o, nil
		}
	}
	return Unset, fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
}

// Match is a single ledger entry. Player2 is empty for a bye.
type Match struct {
	Round   int
	Player1 string
	Player2 string
	Outcome Outcome
}

// IsBye reports whether the entry records a bye.
func (m Match) IsBye() bool { return m.Player2 == "" }

// Opponent returns Player2, or ByeSlot for a bye.
func (m Match) Opponent() string {
	if m.IsBye() {
		return ByeSlot
	}
	return m.Player2
}

// Label renders the outcome the way the export expects it.
func (m Match) Label() string {
	switch m.Outcome {
	case Player1Wins:
		return m.Player1
	case Player2Wins:
		return m.Player2
	case DoubleLoss:
		return DoubleLossLabel
	case AutoWinBye:
		return AutoWinLabel
	default:
		return ""
	}
}

// Row is the serializable form of a ledger entry.
type Row struct {
	Round   int    `json:"round"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Result  string `json:"result"`
}

// Ledger is an append-only list of matches. The zero value is ready to use.
type Ledger struct {
	entries []Match
}

// Append adds entries in order.
func (l *Ledger) Append(ms ...Match) {
	l.entries = append(l.entries, ms...)
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Round returns a copy of the entries of a single round in append order.
func (l *Ledger) Round(round int) []Match {
	var out []Match
	for _, m := range l.entries {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// Rows returns the entries as export rows.
func (l *Ledger) Rows() []Row {
	rows := make([]Row, len(l.entries))
	for i, m := range l.entries {
		rows[i] = Row{Round: m.Round, Player1: m.Player1, Player2: m.Opponent(), Result: m.Label()}
	}
	return rows
}
