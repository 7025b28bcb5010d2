package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/swissround/internal/adapters/export"
	"github.com/okian/swissround/internal/adapters/http/api"
	"github.com/okian/swissround/internal/adapters/http/swagger"
	"github.com/okian/swissround/internal/adapters/repository"
	app "github.com/okian/swissround/internal/app"
	"github.com/okian/swissround/internal/config"
	"github.com/okian/swissround/internal/domain/pairing"
	"github.com/okian/swissround/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build service", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		svc.Stop(stopCtx)
	}()

	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, cfg),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newService wires the configured export sinks and archive into a service.
// The service is not started.
func newService(ctx context.Context, cfg *config.Config, l logger.Logger) (*app.Service, error) {
	pairingOpts := []pairing.Option{pairing.WithRepeatFallback(cfg.RepeatFallback)}
	if cfg.ShuffleSeed != 0 {
		pairingOpts = append(pairingOpts, pairing.WithSeed(cfg.ShuffleSeed))
	}

	var sinks []export.Sink
	if cfg.ExportDir != "" {
		fs, err := export.NewFileSink(cfg.ExportDir)
		if err != nil {
			return nil, fmt.Errorf("export dir: %w", err)
		}
		sinks = append(sinks, fs)
	}
	if cfg.ExportS3Bucket != "" {
		s3Sink, err := export.NewDefaultS3Sink(ctx, cfg.ExportS3Bucket, cfg.ExportS3Prefix)
		if err != nil {
			return nil, fmt.Errorf("s3 export: %w", err)
		}
		sinks = append(sinks, s3Sink)
	}

	opts := []app.Option{
		app.WithLogger(l),
		app.WithWorkerCount(cfg.ExportWorkers),
		app.WithQueueSize(cfg.ExportQueueSize),
		app.WithPairingOptions(pairingOpts...),
		app.WithSinks(sinks...),
	}
	if cfg.ArchivePath != "" {
		store, err := repository.New(cfg.ArchivePath, repository.WithLogger(l.Named("archive")))
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		opts = append(opts, app.WithArchive(store))
	}
	return app.New(opts...), nil
}

// newMux registers the API and its documentation.
func newMux(ctx context.Context, svc *app.Service, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, cfg.MaxArchiveLimit).Register(ctx, mux)
	return mux
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the export queue gauge as a side effect.
			_ = svc.GetStats()
		}
	}
}
