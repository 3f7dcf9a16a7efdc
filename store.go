package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SolverName tags metadata written by this optimizer.
const SolverName = "ES"

// SolutionMeta records the best known solution of one problem.
type SolutionMeta struct {
	ProblemID string
	RunID     string
	Score     int64
	Solver    string
	Seed      int64
	UpdatedAt time.Time
}

// Store keeps solution metadata in a sqlite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the metadata database at path. ":memory:" is accepted.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS solution_meta (
			problem_id TEXT PRIMARY KEY,
			run_id     TEXT NOT NULL,
			score      INTEGER NOT NULL,
			solver     TEXT NOT NULL,
			seed       INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the stored metadata, or ErrNoMetadata.
func (s *Store) Get(ctx context.Context, problemID string) (SolutionMeta, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT problem_id, run_id, score, solver, seed, updated_at FROM solution_meta WHERE problem_id = ? LIMIT 1",
		problemID)
	var m SolutionMeta
	var updated string
	if err := row.Scan(&m.ProblemID, &m.RunID, &m.Score, &m.Solver, &m.Seed, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, fmt.Errorf("problem %s: %w", problemID, ErrNoMetadata)
		}
		return m, fmt.Errorf("error in db execution: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return m, fmt.Errorf("problem %s: bad timestamp %q: %w", problemID, updated, err)
	}
	m.UpdatedAt = t
	return m, nil
}

// Put inserts or replaces the metadata of m.ProblemID.
func (s *Store) Put(ctx context.Context, m SolutionMeta) error {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO solution_meta (problem_id, run_id, score, solver, seed, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(problem_id) DO UPDATE SET
			run_id = excluded.run_id,
			score = excluded.score,
			solver = excluded.solver,
			seed = excluded.seed,
			updated_at = excluded.updated_at`,
		m.ProblemID, m.RunID, m.Score, m.Solver, m.Seed, m.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("error in db execution: %w", err)
	}
	return nil
}

func newRunID() string { return ulid.Make().String() }
