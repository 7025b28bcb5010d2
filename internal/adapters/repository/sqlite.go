package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/standings"
	"github.com/okian/swissround/internal/domain/strength"
	"github.com/okian/swissround/internal/domain/types"
	"github.com/okian/swissround/pkg/logger"
	"github.com/okian/swissround/pkg/metrics"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	now    func() time.Time
	logger logger.Logger
}

// New opens the database at dbPath, creating parent directories, and runs
// migrations.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the pragma below in effect and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores rec in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, rec types.Record) error {
	if err := s.save(ctx, rec); err != nil {
		metrics.RecordArchiveWrite("error")
		metrics.RecordErrorByComponent("archive", "save")
		return err
	}
	metrics.RecordArchiveWrite("ok")
	s.logger.Info(ctx, "tournament archived",
		logger.String("tournament", rec.ID),
		logger.Int("ledger_rows", len(rec.Ledger)),
	)
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, rec types.Record) error {
	if rec.ID == "" {
		return ErrEmptyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM ledger_rows WHERE tournament_id = ?",
		"DELETE FROM standings WHERE tournament_id = ?",
		"DELETE FROM tournaments WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, rec.ID); err != nil {
			return fmt.Errorf("failed to clear previous archive: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tournaments (id, total_rounds, final_round, final, archived_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.TotalRounds, rec.Standings.Round, rec.Standings.Final, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}

	for i, r := range rec.Ledger {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO ledger_rows (tournament_id, seq, round, player1, player2, result) VALUES (?, ?, ?, ?, ?, ?)",
			rec.ID, i, r.Round, r.Player1, r.Player2, r.Result,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger row: %w", err)
		}
	}

	for _, e := range rec.Standings.Entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO standings (tournament_id, rank, name, points, wins, losses, ties, omw, tier, suppressed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, e.Rank, e.Name, e.Points, e.Wins, e.Losses, e.Ties, e.OMW, string(e.Tier), e.Suppressed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert standing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a record with its ledger and standings.
func (s *SQLiteStore) Get(ctx context.Context, id string) (types.Record, error) {
	rec := types.Record{ID: id}
	err := s.db.QueryRowContext(ctx,
		"SELECT total_rounds, final_round, final FROM tournaments WHERE id = ?",
		id,
	).Scan(&rec.TotalRounds, &rec.Standings.Round, &rec.Standings.Final)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to get tournament: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT round, player1, player2, result FROM ledger_rows WHERE tournament_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to get ledger: %w", err)
	}
	for rows.Next() {
		var r ledger.Row
		if err := rows.Scan(&r.Round, &r.Player1, &r.Player2, &r.Result); err != nil {
			rows.Close()
			return types.Record{}, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		rec.Ledger = append(rec.Ledger, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return types.Record{}, fmt.Errorf("failed to iterate ledger: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT rank, name, points, wins, losses, ties, omw, tier, suppressed
		 FROM standings WHERE tournament_id = ? ORDER BY rank`,
		id,
	)
	if err != nil {
		return types.Record{}, fmt.Errorf("failed to get standings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e    standings.Entry
			tier string
		)
		if err := rows.Scan(&e.Rank, &e.Name, &e.Points, &e.Wins, &e.Losses, &e.Ties, &e.OMW, &tier, &e.Suppressed); err != nil {
			return types.Record{}, fmt.Errorf("failed to scan standing: %w", err)
		}
		e.Tier = strength.Tier(tier)
		rec.Standings.Entries = append(rec.Standings.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return types.Record{}, fmt.Errorf("failed to iterate standings: %w", err)
	}
	return rec, nil
}

// List returns archive summaries, newest first. Winner is the rank one
// competitor of the stored standings.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Archived, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.total_rounds, t.archived_at,
		        (SELECT COUNT(*) FROM standings s WHERE s.tournament_id = t.id),
		        COALESCE((SELECT s.name FROM standings s WHERE s.tournament_id = t.id AND s.rank = 1), '')
		 FROM tournaments t ORDER BY t.archived_at DESC, t.id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var out []Archived
	for rows.Next() {
		var (
			a  Archived
			at int64
		)
		if err := rows.Scan(&a.ID, &a.TotalRounds, &at, &a.Competitors, &a.Winner); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		a.ArchivedAt = time.Unix(0, at).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}
	return out, nil
}
