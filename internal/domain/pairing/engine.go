// Package pairing produces round pairings: a greedy Swiss matcher for every
// round and a validated manual override for round one.
package pairing

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/okian/swissround/internal/domain/competitor"
	"github.com/okian/swissround/internal/domain/strength"
	"github.com/okian/swissround/pkg/logger"
	"github.com/okian/swissround/pkg/metrics"
)

// Pair is one head-to-head pairing. Repeat marks a rematch forced by an
// exhausted queue.
type Pair struct {
	First  *competitor.Competitor
	Second *competitor.Competitor
	Repeat bool
}

// Result is the outcome of pairing a round.
type Result struct {
	Round    int
	Pairs    []Pair
	Bye      *competitor.Competitor
	Unpaired []*competitor.Competitor
}

// Repeats counts forced rematches.
func (r Result) Repeats() int {
	n := 0
	for _, p := range r.Pairs {
		if p.Repeat {
			n++
		}
	}
	return n
}

// Engine pairs competitors round by round.
type Engine struct {
	shuffler       Shuffler
	repeatFallback bool
	logger         logger.Logger
}

// NewEngine creates an engine. By default round one is shuffled with a
// time-seeded source and rematches are allowed only when unavoidable.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		shuffler:       defaultShuffler(),
		repeatFallback: true,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pair ranks the roster and greedily matches it for the given round,
// recording opponents on both sides and scoring a bye for an odd one out.
func (e *Engine) Pair(ctx context.Context, round int, roster []*competitor.Competitor) Result {
	start := time.Now()
	defer func() {
		metrics.RecordPairingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	queue := append([]*competitor.Competitor(nil), roster...)
	if round == 1 {
		e.shuffler.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
	}
	queue = strength.Rank(queue, round)

	omw := make(map[*competitor.Competitor]float64, len(queue))
	for _, c := range queue {
		omw[c] = strength.OMW(c, round)
	}

	res := Result{Round: round}
	for len(queue) > 1 {
		p1 := queue[0]
		queue = queue[1:]

		idx := bestOpponent(p1, queue, omw, false)
		repeat := false
		if idx < 0 && e.repeatFallback {
			idx = bestOpponent(p1, queue, omw, true)
			repeat = idx >= 0
		}
		if idx < 0 {
			e.logger.Warn(ctx, "no opponent left, competitor sits out",
				logger.Int("round", round),
				logger.String("competitor", p1.Name()),
			)
			res.Unpaired = append(res.Unpaired, p1)
			continue
		}

		p2 := queue[idx]
		queue = slices.Delete(queue, idx, idx+1)
		competitor.Meet(p1, p2)
		res.Pairs = append(res.Pairs, Pair{First: p1, Second: p2, Repeat: repeat})
		if repeat {
			e.logger.Warn(ctx, "rematch forced by exhausted queue",
				logger.Int("round", round),
				logger.String("first", p1.Name()),
				logger.String("second", p2.Name()),
			)
		}
	}

	if len(queue) == 1 {
		res.Bye = queue[0]
		res.Bye.RecordBye()
	}

	e.record(ctx, res)
	return res
}

// bestOpponent scans candidates in queue order and returns the index of the
// closest one by points, then OMW. Strict comparisons keep the first
// candidate on a tie. Prior opponents are skipped unless allowRepeat.
func bestOpponent(p1 *competitor.Competitor, queue []*competitor.Competitor, omw map[*competitor.Competitor]float64, allowRepeat bool) int {
	best := -1
	minPoints := math.MaxInt
	minOMW := math.Inf(1)
	for i, p2 := range queue {
		if !allowRepeat && p1.HasFaced(p2) {
			continue
		}
		pointDiff := abs(p1.Points - p2.Points)
		omwDiff := math.Abs(omw[p1] - omw[p2])
		if pointDiff < minPoints || (pointDiff == minPoints && omwDiff < minOMW) {
			best = i
			minPoints = pointDiff
			minOMW = omwDiff
		}
	}
	return best
}

func (e *Engine) record(ctx context.Context, res Result) {
	metrics.RecordPairings(len(res.Pairs))
	metrics.RecordRepeatPairings(res.Repeats())
	metrics.RecordUnpaired(len(res.Unpaired))
	fields := []logger.Field{
		logger.Int("round", res.Round),
		logger.Int("pairs", len(res.Pairs)),
	}
	if res.Bye != nil {
		metrics.RecordBye()
		fields = append(fields, logger.String("bye", res.Bye.Name()))
	}
	e.logger.Debug(ctx, "round paired", fields...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
