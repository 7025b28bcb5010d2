package pairing

import (
	"context"

	"github.com/okian/swissround/internal/domain/competitor"
)

// Plan is a validated round-one pairing chosen by hand. Explicit counts the
// proposed pairs; the rest were filled in roster order.
type Plan struct {
	Pairs    []Pair
	Bye      *competitor.Competitor
	Explicit int
}

// ResolveManual validates proposed name pairs against the roster and
// completes them: competitors not named are paired two at a time in roster
// order, and an odd one left over gets the bye. Nothing is mutated.
func ResolveManual(roster []*competitor.Competitor, proposals [][2]string) (Plan, error) {
	if len(proposals) == 0 {
		return Plan{}, invalid(ErrNoProposals)
	}

	byName := make(map[string]*competitor.Competitor, len(roster))
	for _, c := range roster {
		byName[c.Name()] = c
	}

	used := make(map[*competitor.Competitor]bool, len(roster))
	plan := Plan{Explicit: len(proposals)}
	for _, prop := range proposals {
		first, ok := byName[prop[0]]
		if !ok {
			return Plan{}, invalid(ErrUnknownCompetitor, prop[0])
		}
		second, ok := byName[prop[1]]
		if !ok {
			return Plan{}, invalid(ErrUnknownCompetitor, prop[1])
		}
		if first == second {
			return Plan{}, invalid(ErrSelfPairing, prop[0])
		}
		for _, c := range []*competitor.Competitor{first, second} {
			if used[c] {
				return Plan{}, invalid(ErrCompetitorReused, c.Name())
			}
			used[c] = true
		}
		plan.Pairs = append(plan.Pairs, Pair{First: first, Second: second})
	}

	var remaining []*competitor.Competitor
	for _, c := range roster {
		if !used[c] {
			remaining = append(remaining, c)
		}
	}
	for len(remaining) >= 2 {
		plan.Pairs = append(plan.Pairs, Pair{First: remaining[0], Second: remaining[1]})
		remaining = remaining[2:]
	}
	if len(remaining) == 1 {
		plan.Bye = remaining[0]
	}
	return plan, nil
}

// Apply commits a manual plan as the given round: opponents are recorded on
// both sides and the bye is scored.
func (e *Engine) Apply(ctx context.Context, round int, plan Plan) Result {
	res := Result{Round: round, Pairs: append([]Pair(nil), plan.Pairs...), Bye: plan.Bye}
	for _, p := range res.Pairs {
		competitor.Meet(p.First, p.Second)
	}
	if res.Bye != nil {
		res.Bye.RecordBye()
	}
	e.record(ctx, res)
	return res
}
