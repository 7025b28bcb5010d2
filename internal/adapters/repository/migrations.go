package repository

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
    id TEXT PRIMARY KEY,
    total_rounds INTEGER NOT NULL,
    final_round INTEGER NOT NULL,
    final INTEGER NOT NULL,
    archived_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger_rows (
    tournament_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    round INTEGER NOT NULL,
    player1 TEXT NOT NULL,
    player2 TEXT NOT NULL,
    result TEXT NOT NULL,
    PRIMARY KEY (tournament_id, seq),
    FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS standings (
    tournament_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    name TEXT NOT NULL,
    points INTEGER NOT NULL,
    wins INTEGER NOT NULL,
    losses INTEGER NOT NULL,
    ties INTEGER NOT NULL,
    omw REAL NOT NULL,
    tier TEXT NOT NULL,
    suppressed INTEGER NOT NULL,
    PRIMARY KEY (tournament_id, rank),
    FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tournaments_archived_at ON tournaments(archived_at);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
