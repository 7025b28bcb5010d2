// Package repository archives completed tournaments.
package repository

import (
	"context"
	"time"

	"github.com/okian/swissround/internal/domain/types"
)

// Archived is a one-line summary of an archived tournament.
type Archived struct {
	ID          string    `json:"id"`
	TotalRounds int       `json:"total_rounds"`
	Competitors int       `json:"competitors"`
	Winner      string    `json:"winner"`
	ArchivedAt  time.Time `json:"archived_at"`
}

// Store provides read/write access to archived tournaments.
type Store interface {
	// Save stores rec, replacing any earlier archive with the same ID.
	Save(ctx context.Context, rec types.Record) error

	// Get returns the archived record.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (types.Record, error)

	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]Archived, error)

	// Close releases the underlying database.
	Close() error
}
