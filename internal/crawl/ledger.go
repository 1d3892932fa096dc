package crawl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Ledger remembers which record ids were saved and which keep failing.
// The schema matches the id database of earlier crawler runs, so an
// existing ids.db is picked up as is.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenLedger opens (or creates) the ledger database at path
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	for _, stmt := range []string{
		"PRAGMA busy_timeout = 5000",
		`CREATE TABLE IF NOT EXISTS downloaded (id TEXT PRIMARY KEY)`,
		`CREATE TABLE IF NOT EXISTS failed (
			id TEXT PRIMARY KEY,
			fail_days INTEGER DEFAULT 1
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("prepare ledger %s: %w", path, err)
		}
	}
	return &Ledger{db: db}, nil
}

// Close releases the database
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Downloaded reports whether id was saved before
func (l *Ledger) Downloaded(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var one int
	err := l.db.QueryRowContext(ctx, `SELECT 1 FROM downloaded WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger for %s: %w", id, err)
	}
	return true, nil
}

// MarkDownloaded records id as saved and forgets earlier failures
func (l *Ledger) MarkDownloaded(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark %s downloaded: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO downloaded (id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("mark %s downloaded: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM failed WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark %s downloaded: %w", id, err)
	}
	return tx.Commit()
}

// MarkFailed records a failed attempt for id, counting repeats
func (l *Ledger) MarkFailed(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `INSERT INTO failed (id, fail_days) VALUES (?, 1)
		ON CONFLICT(id) DO UPDATE SET fail_days = fail_days + 1`, id)
	if err != nil {
		return fmt.Errorf("mark %s failed: %w", id, err)
	}
	return nil
}

// FailCount returns how many runs failed to fetch id
func (l *Ledger) FailCount(ctx context.Context, id string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var n int
	err := l.db.QueryRowContext(ctx, `SELECT fail_days FROM failed WHERE id = ?`, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query failures of %s: %w", id, err)
	}
	return n, nil
}
