// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: "text" or "tint" (colored console).
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ShuffleSeed seeds the round-one shuffle. 0 seeds from the clock.
	ShuffleSeed int64 `koanf:"shuffle_seed"`

	// RepeatFallback lets the pairing engine rematch a competitor who has
	// already met everyone left instead of sitting them out.
	RepeatFallback bool `koanf:"repeat_fallback"`

	// ExportDir receives a CSV per completed tournament. Empty disables it.
	ExportDir string `koanf:"export_dir"`

	// ExportS3Bucket and ExportS3Prefix upload exports to S3. An empty
	// bucket disables the upload.
	ExportS3Bucket string `koanf:"export_s3_bucket"`
	ExportS3Prefix string `koanf:"export_s3_prefix"`

	// ExportQueueSize bounds pending export jobs.
	ExportQueueSize int `koanf:"export_queue_size"`

	// ExportWorkers sets the number of export workers.
	ExportWorkers int `koanf:"export_workers"`

	// ArchivePath is the SQLite file for completed tournaments. Empty
	// disables the archive.
	ArchivePath string `koanf:"archive_path"`

	// MaxArchiveLimit caps GET /archive?limit.
	MaxArchiveLimit int `koanf:"max_archive_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		RepeatFallback:  true,
		ExportQueueSize: 16,
		ExportWorkers:   1,
		MaxArchiveLimit: 50,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "tint":
		return fmt.Errorf("%w: log_format must be text or tint, got %q", ErrInvalidConfig, c.LogFormat)
	case c.ExportQueueSize <= 0:
		return fmt.Errorf("%w: export_queue_size must be positive", ErrInvalidConfig)
	case c.ExportWorkers <= 0:
		return fmt.Errorf("%w: export_workers must be positive", ErrInvalidConfig)
	case c.MaxArchiveLimit <= 0:
		return fmt.Errorf("%w: max_archive_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
