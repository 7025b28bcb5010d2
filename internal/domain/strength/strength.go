// Package strength computes opponents'-match-win percentage (OMW), its
// qualitative tier, and the ranking key shared by pairing and standings.
package strength

import (
	"sort"

	"github.com/okian/swissround/internal/domain/competitor"
)

// Tier is a qualitative reading of an OMW value.
type Tier string

// Tiers ordered from weakest to strongest schedule.
const (
	Underpowered Tier = "Underpowered"
	Average      Tier = "Average"
	Strong       Tier = "Strong"
	Elite        Tier = "Elite"
	Brutal       Tier = "Brutal"
)

// Inclusive upper bounds of each tier. Anything above eliteMax is Brutal.
const (
	underpoweredMax = 0.40
	averageMax      = 0.50
	strongMax       = 0.60
	eliteMax        = 0.70
)

// MinDisplayRound is the first round after which OMW is worth showing.
// While round <= MinDisplayRound callers suppress OMW output.
const MinDisplayRound = 1

// OMW returns the mean win percentage of c's opponents at the given round.
// A repeated opponent counts once per occurrence.
func OMW(c *competitor.Competitor, round int) float64 {
	n := c.OpponentCount()
	if round == 0 || n == 0 {
		return 0.0
	}
	total := 0.0
	c.EachOpponent(func(opp *competitor.Competitor) {
		total += opp.WinPercentage()
	})
	return total / float64(n)
}

// TierFor maps an OMW value to its tier.
func TierFor(omw float64) Tier {
	switch {
	case omw <= underpoweredMax:
		return Underpowered
	case omw <= averageMax:
		return Average
	case omw <= strongMax:
		return Strong
	case omw <= eliteMax:
		return Elite
	default:
		return Brutal
	}
}

// Suppressed reports whether OMW output should be hidden at round.
func Suppressed(round int) bool {
	return round <= MinDisplayRound
}

// Rank returns a copy of roster ordered by points then OMW, both
// descending. Equal keys keep their roster order.
func Rank(roster []*competitor.Competitor, round int) []*competitor.Competitor {
	ranked := append([]*competitor.Competitor(nil), roster...)
	omw := make(map[*competitor.Competitor]float64, len(ranked))
	for _, c := range ranked {
		omw[c] = OMW(c, round)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return omw[a] > omw[b]
	})
	return ranked
}
