// Package storage provides SQLite-based persistence for run results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run outcomes.
const (
	OutcomeOver     = "over"     // no controllable entity left alive
	OutcomeQuit     = "quit"     // player left mid-run
	OutcomeComplete = "complete" // headless run reached its tick limit
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// RunRecord is the result of one simulation run. It records how a run
// ended, not the world itself.
type RunRecord struct {
	ID        string
	LevelID   string
	Player    string
	Ticks     int
	Spawned   int
	Score     int
	Outcome   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			spawned INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing ID is filled with a new UUID.
// Returns the record's ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, level_id, player, ticks, spawned, score, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.LevelID, run.Player, run.Ticks, run.Spawned, run.Score, run.Outcome,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, level_id, player, ticks, spawned, score, outcome, created_at`

// TopRuns retrieves the top N runs for the given level.
// Results are ordered by score descending.
func (s *Store) TopRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all levels.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// BestScore returns the highest score for the given level.
// Returns 0 if no runs exist.
func (s *Store) BestScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level_id = ?",
		levelID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// LevelStats summarises every recorded run of one level.
type LevelStats struct {
	Runs        int
	BestScore   int
	LongestRun  int // most ticks in a single run
	Grown       int // entities spawned across all runs
	Completions int // headless runs that reached their tick limit
}

// LevelStats aggregates the runs recorded for a level. A level with no
// runs yields the zero value.
func (s *Store) LevelStats(levelID string) (LevelStats, error) {
	var (
		st               LevelStats
		best, ticks, sum sql.NullInt64
	)
	err := s.db.QueryRow(`
		SELECT COUNT(*), MAX(score), MAX(ticks), SUM(spawned),
		       COUNT(CASE WHEN outcome = ? THEN 1 END)
		FROM runs WHERE level_id = ?`,
		OutcomeComplete, levelID,
	).Scan(&st.Runs, &best, &ticks, &sum, &st.Completions)
	if err != nil {
		return LevelStats{}, fmt.Errorf("storage: cannot query level stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.LongestRun = int(ticks.Int64)
	st.Grown = int(sum.Int64)
	return st, nil
}

// ClearRuns deletes all runs for the given level, or every run when
// levelID is empty.
func (s *Store) ClearRuns(levelID string) error {
	var err error
	if levelID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Player, &r.Ticks, &r.Spawned, &r.Score, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles the driver returning either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
