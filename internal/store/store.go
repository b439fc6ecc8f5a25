// Package store handles SQLite persistence for the analysis archive.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avolkov/keyprof/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run is one archived analysis, identified by when it was taken.
type Run struct {
	ID           int64
	CreatedAt    time.Time
	Source       string
	PressEvents  int
	ErrorCount   int
	ErrorRate    float64
	SessionCount int
	AverageWPM   float64
}

// Store wraps SQLite access for archived analysis runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			press_events INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			error_rate REAL NOT NULL,
			session_count INTEGER NOT NULL,
			average_wpm REAL NOT NULL,
			summary_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_sessions (
			run_id INTEGER NOT NULL,
			start_ts REAL NOT NULL,
			end_ts REAL NOT NULL,
			keystrokes INTEGER NOT NULL,
			chars INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_sessions_run_id ON run_sessions(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores an analysis run, its full summary JSON, and its
// per-session aggregates.
func (s *Store) InsertRun(ctx context.Context, run Run, summary any, sessions []model.Session) (int64, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, source, press_events, error_count, error_rate, session_count, average_wpm, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Source,
		run.PressEvents,
		run.ErrorCount,
		run.ErrorRate,
		run.SessionCount,
		run.AverageWPM,
		string(payload),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(sessions) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_sessions (run_id, start_ts, end_ts, keystrokes, chars)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sess := range sessions {
			if _, err := stmt.ExecContext(ctx, id, sess.Start, sess.End, sess.Keystrokes, sess.Chars); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns archived runs ordered oldest first, optionally
// limited to the most recent n.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, press_events, error_count, error_rate, session_count, average_wpm
		 FROM runs
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Source, &run.PressEvents, &run.ErrorCount, &run.ErrorRate, &run.SessionCount, &run.AverageWPM); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return runs, nil
}

// LoadSummary returns the stored summary JSON for one run.
func (s *Store) LoadSummary(ctx context.Context, runID int64) (json.RawMessage, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT summary_json FROM runs WHERE id = ?`, runID).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// ListRunSessions returns the per-session aggregates for one run,
// ordered by start time.
func (s *Store) ListRunSessions(ctx context.Context, runID int64) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT start_ts, end_ts, keystrokes, chars
		 FROM run_sessions
		 WHERE run_id = ?
		 ORDER BY start_ts ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.Session
	for rows.Next() {
		var sess model.Session
		if err := rows.Scan(&sess.Start, &sess.End, &sess.Keystrokes, &sess.Chars); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
