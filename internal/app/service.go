// Package service provides the tournament service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/swissround/internal/adapters/export"
	exportqueue "github.com/okian/swissround/internal/adapters/mq/queue"
	workerpool "github.com/okian/swissround/internal/adapters/mq/worker"
	"github.com/okian/swissround/internal/adapters/repository"
	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/pairing"
	"github.com/okian/swissround/internal/domain/standings"
	"github.com/okian/swissround/internal/domain/tournament"
	"github.com/okian/swissround/internal/domain/types"
	"github.com/okian/swissround/pkg/logger"
	"github.com/okian/swissround/pkg/metrics"
)

// Service serializes access to a single tournament and exports it once it
// completes.
type Service struct {
	mu sync.Mutex

	tournament *tournament.Tournament
	publisher  *export.Publisher
	archive    repository.Store

	exportQueue exportqueue.Queue
	workerPool  *workerpool.Pool

	// Configuration
	workerCount    int
	queueSize      int
	pairingOpts    []pairing.Option
	tournamentOpts []tournament.Option
	sinks          []export.Sink

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of export workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending export jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPairingOptions configures the pairing engine.
func WithPairingOptions(opts ...pairing.Option) Option {
	return func(s *Service) {
		s.pairingOpts = append(s.pairingOpts, opts...)
	}
}

// WithTournamentOptions configures the tournament itself.
func WithTournamentOptions(opts ...tournament.Option) Option {
	return func(s *Service) {
		s.tournamentOpts = append(s.tournamentOpts, opts...)
	}
}

// WithSinks adds export sinks written to when a tournament completes.
func WithSinks(sinks ...export.Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithArchive stores completed tournaments in store. The service closes it
// on Stop.
func WithArchive(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.archive = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 1,
		queueSize:   16,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	engineOpts := append([]pairing.Option{pairing.WithLogger(s.logger.Named("pairing"))}, s.pairingOpts...)
	tOpts := append([]tournament.Option{
		tournament.WithEngine(pairing.NewEngine(engineOpts...)),
		tournament.WithLogger(s.logger.Named("tournament")),
	}, s.tournamentOpts...)
	s.tournament = tournament.New(tOpts...)
	s.publisher = export.NewPublisher(
		export.WithSinks(s.sinks...),
		export.WithLogger(s.logger.Named("export")),
	)
	return s
}

// Start starts the export workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.exportQueue = exportqueue.NewInMemoryQueue(exportqueue.WithCapacity(s.queueSize))
	s.workerPool = workerpool.NewPool(s.workerCount, s.exportQueue, workerpool.HandlerFunc(s.handleExport), s.logger)
	// Workers outlive the request that started the service; Stop ends them.
	s.workerPool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "tournament service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Strings("sinks", s.publisher.Sinks()),
		logger.Bool("archive", s.archive != nil),
	)
	return nil
}

// Stop drains pending exports and closes the archive.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping tournament service...")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "export workers did not drain", logger.Error(err))
	}
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			s.logger.Error(ctx, "error closing archive", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "tournament service stopped")
}

// ConfirmPlayers starts a new tournament with the given roster.
func (s *Service) ConfirmPlayers(ctx context.Context, names []string, rounds int) (types.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tournament.ConfirmPlayers(ctx, names, rounds); err != nil {
		return types.Summary{}, err
	}
	return s.tournament.Summary(), nil
}

// SetManualPairings plans round one by hand.
func (s *Service) SetManualPairings(ctx context.Context, pairs [][2]string) (types.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tournament.SetManualPairings(ctx, pairs); err != nil {
		return types.Summary{}, err
	}
	return s.tournament.Summary(), nil
}

// AdvanceRound pairs the next round or completes the tournament. The first
// completion queues an export job.
func (s *Service) AdvanceRound(ctx context.Context) (types.Advance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasCompleted := s.tournament.Phase() == types.PhaseCompleted
	adv, err := s.tournament.AdvanceRound(ctx)
	if err != nil {
		return types.Advance{}, err
	}
	if adv.Completed && !wasCompleted {
		s.enqueueExport(ctx, s.tournament.Record())
	}
	return adv, nil
}

func (s *Service) enqueueExport(ctx context.Context, rec types.Record) {
	if s.archive == nil && len(s.sinks) == 0 {
		return
	}
	if !s.started {
		s.logger.Warn(ctx, "service not started; export skipped", logger.String("tournament", rec.ID))
		metrics.RecordExport("queue", "skipped")
		return
	}
	// The export outlives the request that completed the tournament.
	err := s.exportQueue.Enqueue(context.WithoutCancel(ctx), exportqueue.Job{Record: rec})
	switch {
	case err == nil:
	case errors.Is(err, exportqueue.ErrQueueFull):
		s.logger.Warn(ctx, "export queue full; export dropped", logger.String("tournament", rec.ID))
		metrics.RecordExport("queue", "dropped")
		return
	case errors.Is(err, exportqueue.ErrQueueClosed):
		s.logger.Warn(ctx, "export queue closed; export dropped", logger.String("tournament", rec.ID))
		metrics.RecordExport("queue", "closed")
		return
	default:
		s.logger.Error(ctx, "export not queued", logger.String("tournament", rec.ID), logger.Error(err))
		metrics.RecordExport("queue", "error")
		return
	}
	s.logger.Info(ctx, "export queued", logger.String("tournament", rec.ID))
}

// handleExport archives and publishes a completed tournament. Failures are
// reported to the worker, never to tournament callers.
func (s *Service) handleExport(ctx context.Context, j workerpool.Job) error {
	var errs []error
	if s.archive != nil {
		if err := s.archive.Save(ctx, j.Record); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}
	if len(s.sinks) > 0 {
		if err := s.publisher.Publish(ctx, j.Record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConfirmResults scores the current round.
func (s *Service) ConfirmResults(ctx context.Context, outcomes []ledger.Outcome) (types.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tournament.ConfirmResults(ctx, outcomes); err != nil {
		return types.Round{}, err
	}
	return s.tournament.CurrentRound(), nil
}

// Reset discards the tournament.
func (s *Service) Reset(ctx context.Context) types.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournament.Reset(ctx)
	return s.tournament.Summary()
}

// Summary returns the tournament state.
func (s *Service) Summary(_ context.Context) types.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournament.Summary()
}

// CurrentRound returns the boards of the current round.
func (s *Service) CurrentRound(_ context.Context) types.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournament.CurrentRound()
}

// Standings returns a fresh standings snapshot.
func (s *Service) Standings(_ context.Context) standings.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournament.Standings()
}

// Ledger returns every recorded match as export rows.
func (s *Service) Ledger(_ context.Context) []ledger.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tournament.Ledger()
}

// ExportCSV renders the ledger and current standings.
func (s *Service) ExportCSV(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	rec := s.tournament.Record()
	s.mu.Unlock()

	if rec.ID == "" {
		return "", nil, tournament.ErrNoPlayers
	}
	start := time.Now()
	data, err := export.Render(rec)
	if err != nil {
		metrics.RecordExport("http", "error")
		return "", nil, err
	}
	metrics.RecordExport("http", "ok")
	s.logger.Debug(ctx, "export rendered",
		logger.String("tournament", rec.ID),
		logger.Int("bytes", len(data)),
		logger.Int("took_us", int(time.Since(start).Microseconds())),
	)
	return export.FileName(rec.ID), data, nil
}

// Archived lists archived tournaments, newest first.
func (s *Service) Archived(ctx context.Context, limit int) ([]repository.Archived, error) {
	if s.archive == nil {
		return nil, repository.ErrDisabled
	}
	return s.archive.List(ctx, limit)
}

// ArchivedRecord returns one archived tournament.
func (s *Service) ArchivedRecord(ctx context.Context, id string) (types.Record, error) {
	if s.archive == nil {
		return types.Record{}, repository.ErrDisabled
	}
	return s.archive.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := s.tournament.Summary()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"phase":       string(sum.Phase),
		"round":       sum.Round,
		"competitors": len(sum.Competitors),
	}
	if s.started {
		stats["queueLength"] = s.exportQueue.Len()
		metrics.UpdateExportQueueSize(s.exportQueue.Len())
	}
	return stats
}
