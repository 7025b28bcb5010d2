// Package tournament implements the round state machine of a Swiss
// tournament. A Tournament is a single mutable aggregate; callers serialize
// access to it.
package tournament

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/swissround/internal/domain/competitor"
	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/pairing"
	"github.com/okian/swissround/internal/domain/standings"
	"github.com/okian/swissround/internal/domain/types"
	"github.com/okian/swissround/pkg/logger"
	"github.com/okian/swissround/pkg/metrics"
)

// Tournament owns the roster, the round counter, the current pairings and
// the ledger.
type Tournament struct {
	id          string
	roster      []*competitor.Competitor
	totalRounds int
	round       int

	// current round
	pairs     []pairing.Pair
	bye       *competitor.Competitor
	unpaired  []string
	confirmed bool

	manual    *pairing.Plan
	completed bool
	ledger    ledger.Ledger

	engine *pairing.Engine
	logger logger.Logger
	newID  func() string
}

// Option applies a configuration option to the Tournament.
type Option func(*Tournament)

// WithEngine sets the pairing engine.
func WithEngine(e *pairing.Engine) Option {
	return func(t *Tournament) {
		if e != nil {
			t.engine = e
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(t *Tournament) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator used for tournament IDs.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tournament) {
		if gen != nil {
			t.newID = gen
		}
	}
}

// New creates an idle tournament with no competitors.
func New(opts ...Option) *Tournament {
	t := &Tournament{
		logger: logger.Nop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.engine == nil {
		t.engine = pairing.NewEngine(pairing.WithLogger(t.logger))
	}
	return t
}

// ConfirmPlayers validates the roster and round count and starts a fresh
// tournament in the idle phase. It is rejected once round one has begun.
func (t *Tournament) ConfirmPlayers(ctx context.Context, names []string, totalRounds int) error {
	if t.round > 0 {
		return t.fail(ctx, ErrTournamentInProgress)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return t.fail(ctx, ErrEmptyName)
		}
		if seen[n] {
			return t.fail(ctx, fmt.Errorf("%w: %q", ErrDuplicateName, n))
		}
		seen[n] = true
	}
	if len(names) < 2 {
		return t.fail(ctx, ErrInsufficientPlayers)
	}
	if totalRounds <= 0 {
		return t.fail(ctx, fmt.Errorf("%w: %d", ErrInvalidRoundCount, totalRounds))
	}

	t.clear()
	t.id = t.newID()
	t.totalRounds = totalRounds
	t.roster = make([]*competitor.Competitor, len(names))
	for i, n := range names {
		t.roster[i] = competitor.New(n)
	}

	metrics.UpdateCompetitors(len(t.roster))
	metrics.UpdateCurrentRound(0)
	t.logger.Info(ctx, "competitors confirmed",
		logger.String("tournament", t.id),
		logger.Int("competitors", len(t.roster)),
		logger.Int("rounds", totalRounds),
	)
	return nil
}

// SetManualPairings validates hand-picked round-one pairs and keeps them for
// the round-one advance. A later call replaces the plan.
func (t *Tournament) SetManualPairings(ctx context.Context, proposals [][2]string) error {
	if len(t.roster) == 0 {
		return t.fail(ctx, ErrNoPlayers)
	}
	if t.round > 0 {
		return t.fail(ctx, ErrTournamentInProgress)
	}
	plan, err := pairing.ResolveManual(t.roster, proposals)
	if err != nil {
		return t.fail(ctx, err)
	}
	t.manual = &plan
	t.logger.Info(ctx, "manual round one pairings accepted",
		logger.Int("explicit", plan.Explicit),
		logger.Int("pairs", len(plan.Pairs)),
	)
	return nil
}

// AdvanceRound pairs the next round, or completes the tournament once the
// configured number of rounds has been played.
func (t *Tournament) AdvanceRound(ctx context.Context) (types.Advance, error) {
	if len(t.roster) == 0 {
		return types.Advance{}, t.fail(ctx, ErrNoPlayers)
	}
	if t.round > 0 && !t.confirmed {
		return types.Advance{}, t.fail(ctx, ErrResultsNotConfirmed)
	}
	if t.round >= t.totalRounds {
		if !t.completed {
			t.completed = true
			metrics.RecordTournamentCompleted()
			t.logger.Info(ctx, "tournament completed",
				logger.String("tournament", t.id),
				logger.Int("rounds", t.round),
			)
		}
		final := t.Standings()
		return types.Advance{Completed: true, Final: &final}, nil
	}

	t.round++
	var res pairing.Result
	if t.round == 1 && t.manual != nil {
		res = t.engine.Apply(ctx, t.round, *t.manual)
		t.manual = nil
	} else {
		res = t.engine.Pair(ctx, t.round, t.roster)
	}

	t.pairs = res.Pairs
	t.bye = res.Bye
	t.unpaired = t.unpaired[:0]
	for _, c := range res.Unpaired {
		t.unpaired = append(t.unpaired, c.Name())
	}
	t.confirmed = false
	if res.Bye != nil {
		t.ledger.Append(ledger.Match{Round: t.round, Player1: res.Bye.Name(), Outcome: ledger.AutoWinBye})
	}

	metrics.RecordRoundStarted(t.round)
	t.logger.Info(ctx, "round started",
		logger.String("tournament", t.id),
		logger.Int("round", t.round),
		logger.Int("pairs", len(res.Pairs)),
		logger.Int("repeats", res.Repeats()),
	)
	round := t.CurrentRound()
	return types.Advance{Round: &round}, nil
}

// ConfirmResults scores the current round. outcomes holds one entry per
// pairing in board order. Nothing is applied unless every outcome is valid.
func (t *Tournament) ConfirmResults(ctx context.Context, outcomes []ledger.Outcome) error {
	if t.round == 0 || t.completed {
		return t.fail(ctx, ErrNoActiveRound)
	}
	if t.confirmed {
		return t.fail(ctx, ErrResultsAlreadyConfirmed)
	}
	if len(outcomes) != len(t.pairs) {
		return t.fail(ctx, fmt.Errorf("%w: got %d outcomes for %d matches", ErrIncompleteResults, len(outcomes), len(t.pairs)))
	}
	for i, o := range outcomes {
		switch o {
		case ledger.Player1Wins, ledger.Player2Wins, ledger.DoubleLoss:
		case ledger.Unset:
			return t.fail(ctx, fmt.Errorf("%w: board %d", ErrIncompleteResults, i+1))
		default:
			return t.fail(ctx, fmt.Errorf("%w: board %d: %s", ErrInvalidOutcome, i+1, o))
		}
	}

	for i, p := range t.pairs {
		switch outcomes[i] {
		case ledger.Player1Wins:
			p.First.RecordWin()
			p.Second.RecordLoss()
		case ledger.Player2Wins:
			p.Second.RecordWin()
			p.First.RecordLoss()
		case ledger.DoubleLoss:
			p.First.RecordLoss()
			p.Second.RecordLoss()
		}
		t.ledger.Append(ledger.Match{
			Round:   t.round,
			Player1: p.First.Name(),
			Player2: p.Second.Name(),
			Outcome: outcomes[i],
		})
	}
	t.confirmed = true

	metrics.RecordResultsConfirmed()
	t.logger.Info(ctx, "results confirmed",
		logger.String("tournament", t.id),
		logger.Int("round", t.round),
	)
	return nil
}

// Reset drops every competitor and all history.
func (t *Tournament) Reset(ctx context.Context) {
	t.clear()
	metrics.UpdateCompetitors(0)
	metrics.UpdateCurrentRound(0)
	t.logger.Info(ctx, "tournament reset")
}

func (t *Tournament) clear() {
	t.id = ""
	t.roster = nil
	t.totalRounds = 0
	t.round = 0
	t.pairs = nil
	t.bye = nil
	t.unpaired = nil
	t.confirmed = false
	t.manual = nil
	t.completed = false
	t.ledger = ledger.Ledger{}
}

func (t *Tournament) fail(ctx context.Context, err error) error {
	kind := Kind(err)
	metrics.RecordValidationFailure(kind)
	t.logger.Debug(ctx, "operation rejected", logger.String("kind", kind), logger.Error(err))
	return err
}

// ID returns the tournament ID, empty before ConfirmPlayers.
func (t *Tournament) ID() string { return t.id }

// Round returns the current round number, 0 before the first round.
func (t *Tournament) Round() int { return t.round }

// TotalRounds returns the configured number of rounds.
func (t *Tournament) TotalRounds() int { return t.totalRounds }

// Phase returns the state machine phase.
func (t *Tournament) Phase() types.Phase {
	switch {
	case t.completed:
		return types.PhaseCompleted
	case t.round == 0:
		return types.PhaseIdle
	case t.confirmed:
		return types.PhaseResultsConfirmed
	default:
		return types.PhasePaired
	}
}

// Competitors returns the roster names in creation order.
func (t *Tournament) Competitors() []string {
	out := make([]string, len(t.roster))
	for i, c := range t.roster {
		out[i] = c.Name()
	}
	return out
}

// Summary describes the tournament.
func (t *Tournament) Summary() types.Summary {
	return types.Summary{
		ID:            t.id,
		Phase:         t.Phase(),
		Round:         t.round,
		TotalRounds:   t.totalRounds,
		Competitors:   t.Competitors(),
		ManualPlanned: t.manual != nil,
		LedgerEntries: t.ledger.Len(),
	}
}

// CurrentRound returns the boards of the current round. The bye, if any,
// is the last board. Confirmed results are read back from the ledger.
func (t *Tournament) CurrentRound() types.Round {
	var results []string
	if t.confirmed {
		for _, m := range t.ledger.Round(t.round) {
			if !m.IsBye() {
				results = append(results, m.Label())
			}
		}
	}

	r := types.Round{
		Number:    t.round,
		Boards:    make([]types.Board, 0, len(t.pairs)+1),
		Unpaired:  append([]string(nil), t.unpaired...),
		Confirmed: t.confirmed,
	}
	for i, p := range t.pairs {
		b := types.Board{
			Number:  i + 1,
			Player1: p.First.Name(),
			Player2: p.Second.Name(),
			Repeat:  p.Repeat,
		}
		if i < len(results) {
			b.Result = results[i]
		}
		r.Boards = append(r.Boards, b)
	}
	if t.bye != nil {
		r.Boards = append(r.Boards, types.Board{
			Number:  len(t.pairs) + 1,
			Player1: t.bye.Name(),
			Player2: ledger.ByeSlot,
			Result:  ledger.AutoWinLabel,
			Bye:     true,
		})
	}
	return r
}

// Standings computes a fresh snapshot at the current round. Once the
// tournament is completed the snapshot is final.
func (t *Tournament) Standings() standings.Snapshot {
	return standings.Compute(t.roster, t.round, t.completed)
}

// Ledger returns every recorded match as export rows.
func (t *Tournament) Ledger() []ledger.Row {
	return t.ledger.Rows()
}

// Record returns the exportable history with current standings.
func (t *Tournament) Record() types.Record {
	return types.Record{
		ID:          t.id,
		TotalRounds: t.totalRounds,
		Ledger:      t.ledger.Rows(),
		Standings:   t.Standings(),
	}
}
