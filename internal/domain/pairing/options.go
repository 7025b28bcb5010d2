package pairing

import (
	"math/rand"
	"time"

	"github.com/okian/swissround/pkg/logger"
)

// Shuffler randomizes the round-one order. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithShuffler sets the source used for the round-one shuffle.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) {
		if s != nil {
			e.shuffler = s
		}
	}
}

// WithSeed seeds the round-one shuffle. Zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.shuffler = rand.New(rand.NewSource(seed)) //nolint:gosec // pairing order, not security
		}
	}
}

// WithoutShuffle disables the round-one shuffle so pairing is fully
// deterministic.
func WithoutShuffle() Option {
	return func(e *Engine) {
		e.shuffler = noShuffle{}
	}
}

// WithRepeatFallback controls what happens when a competitor has already
// met everyone left in the queue. When enabled (default) the best remaining
// candidate is used anyway; when disabled the competitor sits the round out.
func WithRepeatFallback(enabled bool) Option {
	return func(e *Engine) {
		e.repeatFallback = enabled
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func defaultShuffler() Shuffler {
	return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // pairing order, not security
}
