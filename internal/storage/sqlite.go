// Package storage keeps the run history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished game.
type Run struct {
	ID        uuid.UUID
	Scenario  string
	Score     int
	Health    int
	Ticks     int64
	Outcome   string // "game_over", "quit" or "faulted"
	CreatedAt time.Time
}

// RunStats aggregates the runs of one scenario.
type RunStats struct {
	Scenario   string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LongestRun int64 // ticks
	LastPlayed time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			score INTEGER NOT NULL,
			health INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(scenario, score DESC);
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

// SaveRun records a finished run and returns its ID.
// A nil ID is replaced by a fresh UUID, a zero CreatedAt by now.
func (s *Store) SaveRun(run Run) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, scenario, score, health, ticks, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Scenario, run.Score, run.Health, run.Ticks, run.Outcome,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// TopRuns returns the best runs of a scenario: highest score first, the
// shorter run winning ties. A non-positive limit means 10.
func (s *Store) TopRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scenario, score, health, ticks, outcome, created_at
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY score DESC, ticks ASC, created_at ASC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID returns a run, or nil when no run has that ID.
func (s *Store) RunByID(id uuid.UUID) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, scenario, score, health, ticks, outcome, created_at
		 FROM runs WHERE id = ?`,
		id.String(),
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// HighScore returns the best score of a scenario, 0 when it was never played.
func (s *Store) HighScore(scenario string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE scenario = ?",
		scenario,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes the history of a scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the history of one scenario.
func (s *Store) Stats(scenario string) (*RunStats, error) {
	stats := &RunStats{Scenario: scenario}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(ticks), 0), MAX(created_at)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.LongestRun, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats aggregates every scenario that has been played.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.Scenario, &st.RunsCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &st.LongestRun, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Scenario] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// timeLayout is how created_at is written; it sorts lexically.
const timeLayout = "2006-01-02 15:04:05.000000"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		id        string
		createdAt any
	)
	err := sc.Scan(&id, &run.Scenario, &run.Score, &run.Health, &run.Ticks, &run.Outcome, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	run.ID, err = uuid.Parse(id)
	if err != nil {
		return run, fmt.Errorf("storage: bad run id %q: %w", id, err)
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and the string forms SQLite hands back.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
