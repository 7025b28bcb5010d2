// Package standings builds ranked snapshots of a tournament roster.
package standings

import (
	"github.com/okian/swissround/internal/domain/competitor"
	"github.com/okian/swissround/internal/domain/strength"
)

// Entry is one ranked row. Tier is empty when Suppressed.
type Entry struct {
	Rank       int           `json:"rank"`
	Name       string        `json:"name"`
	Points     int           `json:"points"`
	Wins       int           `json:"wins"`
	Losses     int           `json:"losses"`
	Ties       int           `json:"ties"`
	OMW        float64       `json:"omw"`
	Tier       strength.Tier `json:"tier,omitempty"`
	Suppressed bool          `json:"suppressed"`
}

// Snapshot is the ranked roster at a given round.
type Snapshot struct {
	Round   int     `json:"round"`
	Final   bool    `json:"final"`
	Entries []Entry `json:"entries"`
}

// Compute ranks the roster at round. OMW and tier are marked suppressed
// while the round is too early to be meaningful, unless the snapshot is
// final. The raw OMW is always filled in.
func Compute(roster []*competitor.Competitor, round int, final bool) Snapshot {
	suppressed := !final && strength.Suppressed(round)
	ranked := strength.Rank(roster, round)
	snap := Snapshot{Round: round, Final: final, Entries: make([]Entry, len(ranked))}
	for i, c := range ranked {
		omw := strength.OMW(c, round)
		e := Entry{
			Rank:       i + 1,
			Name:       c.Name(),
			Points:     c.Points,
			Wins:       c.Wins,
			Losses:     c.Losses,
			Ties:       c.Ties,
			OMW:        omw,
			Suppressed: suppressed,
		}
		if !suppressed {
			e.Tier = strength.TierFor(omw)
		}
		snap.Entries[i] = e
	}
	return snap
}
