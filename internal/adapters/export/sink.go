package export

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/swissround/internal/domain/types"
	"github.com/okian/swissround/pkg/logger"
	"github.com/okian/swissround/pkg/metrics"
)

// Sink stores a rendered export under a key.
type Sink interface {
	Name() string
	Put(ctx context.Context, key string, data []byte) error
}

// Publisher renders records and writes them to every sink concurrently.
type Publisher struct {
	sinks   []Sink
	logger  logger.Logger
	timeout time.Duration
}

// Option applies a configuration option to the Publisher.
type Option func(*Publisher)

// WithSinks adds sinks. Nil sinks are ignored.
func WithSinks(sinks ...Sink) Option {
	return func(p *Publisher) {
		for _, s := range sinks {
			if s != nil {
				p.sinks = append(p.sinks, s)
			}
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTimeout bounds a single publish across all sinks.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPublisher creates a Publisher.
func NewPublisher(opts ...Option) *Publisher {
	p := &Publisher{
		logger:  logger.Nop(),
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sinks returns the names of the configured sinks.
func (p *Publisher) Sinks() []string {
	out := make([]string, len(p.sinks))
	for i, s := range p.sinks {
		out[i] = s.Name()
	}
	return out
}

// Publish renders rec and writes it to every sink. Every sink is attempted;
// the first failure is returned as an *ExportIOError.
func (p *Publisher) Publish(ctx context.Context, rec types.Record) error {
	if len(p.sinks) == 0 {
		return ErrNoSinks
	}
	data, err := Render(rec)
	if err != nil {
		return err
	}
	key := FileName(rec.ID)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var g errgroup.Group
	for _, s := range p.sinks {
		g.Go(func() error {
			if err := s.Put(ctx, key, data); err != nil {
				metrics.RecordExport(s.Name(), "error")
				metrics.RecordErrorByComponent("export", s.Name())
				p.logger.Error(ctx, "export failed",
					logger.String("sink", s.Name()),
					logger.String("key", key),
					logger.Error(err),
				)
				return &ExportIOError{Sink: s.Name(), Key: key, Err: err}
			}
			metrics.RecordExport(s.Name(), "ok")
			p.logger.Info(ctx, "export written",
				logger.String("sink", s.Name()),
				logger.String("key", key),
				logger.Int("bytes", len(data)),
			)
			return nil
		})
	}
	return g.Wait()
}
