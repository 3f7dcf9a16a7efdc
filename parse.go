package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ProblemResult holds the score and timing of a single problem optimization run.
type ProblemResult struct {
	ProblemID string `json:"problemId"`
	RunID     string `json:"runId"`
	Score     int64  `json:"score"`
	Valid     bool   `json:"valid"`
	PrevScore int64  `json:"prevScore"`
	Improved  bool   `json:"improved"`
	Seed      int64  `json:"seed"`
	TimeMs    int64  `json:"timeMs"`
}

// problemID derives an id from a problem path: "problems/42.json" -> "42".
func problemID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runProblem(p *Problem, id string, cfg Config) (ProblemResult, Result, error) {
	opt, err := NewOptimizer(p, cfg)
	if err != nil {
		return ProblemResult{ProblemID: id}, Result{}, err
	}
	res, err := opt.Optimize()
	return ProblemResult{
		ProblemID: id,
		RunID:     newRunID(),
		Score:     res.Score,
		Valid:     res.Valid,
		Seed:      res.Seed,
		TimeMs:    res.Elapsed.Milliseconds(),
	}, res, err
}

// keepIfBetter persists a result when it is valid and strictly beats the
// stored best. The solution file goes to solutionsDir/<id>.json.
func keepIfBetter(ctx context.Context, store *Store, solutionsDir string, pr *ProblemResult, pl Placement) error {
	prev, err := store.Get(ctx, pr.ProblemID)
	switch {
	case errors.Is(err, ErrNoMetadata):
	case err != nil:
		return err
	default:
		pr.PrevScore = prev.Score
	}
	if !pr.Valid {
		fmt.Fprintf(logw(), "[store] %s: invalid placement, not saved\n", pr.ProblemID)
		return nil
	}
	if err == nil && pr.Score <= prev.Score {
		fmt.Fprintf(logw(), "[store] %s: %d does not beat %d (run %s)\n", pr.ProblemID, pr.Score, prev.Score, prev.RunID)
		return nil
	}

	path := filepath.Join(solutionsDir, pr.ProblemID+".json")
	if err := WriteSolution(path, pl); err != nil {
		return err
	}
	if err := store.Put(ctx, SolutionMeta{
		ProblemID: pr.ProblemID,
		RunID:     pr.RunID,
		Score:     pr.Score,
		Solver:    SolverName,
		Seed:      pr.Seed,
	}); err != nil {
		return err
	}
	pr.Improved = true
	fmt.Fprintf(logw(), "[store] %s: saved %d to %s\n", pr.ProblemID, pr.Score, path)
	return nil
}
