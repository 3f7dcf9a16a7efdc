package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNoMetadata)
}

func TestStorePutGetUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := SolutionMeta{ProblemID: "42", RunID: newRunID(), Score: 1000, Solver: SolverName, Seed: 7}
	require.NoError(t, s.Put(ctx, first))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, first.RunID, got.RunID)
	assert.Equal(t, int64(1000), got.Score)
	assert.Equal(t, SolverName, got.Solver)
	assert.Equal(t, int64(7), got.Seed)
	assert.False(t, got.UpdatedAt.IsZero())

	second := SolutionMeta{ProblemID: "42", RunID: newRunID(), Score: 2500, Solver: SolverName, Seed: 8}
	require.NoError(t, s.Put(ctx, second))
	got, err = s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, second.RunID, got.RunID)
	assert.Equal(t, int64(2500), got.Score)
}

func TestKeepIfBetter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()
	pl := Placement{{X: 1, Y: 2, Volume: 3}}
	path := filepath.Join(dir, "9.json")

	invalid := ProblemResult{ProblemID: "9", RunID: newRunID(), Score: 500, Valid: false}
	require.NoError(t, keepIfBetter(ctx, s, dir, &invalid, pl))
	assert.False(t, invalid.Improved)
	assert.NoFileExists(t, path)

	first := ProblemResult{ProblemID: "9", RunID: newRunID(), Score: 500, Valid: true}
	require.NoError(t, keepIfBetter(ctx, s, dir, &first, pl))
	assert.True(t, first.Improved)
	assert.FileExists(t, path)

	same := ProblemResult{ProblemID: "9", RunID: newRunID(), Score: 500, Valid: true}
	require.NoError(t, keepIfBetter(ctx, s, dir, &same, Placement{{X: 9, Y: 9, Volume: 9}}))
	assert.False(t, same.Improved)
	assert.Equal(t, int64(500), same.PrevScore)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	kept, err := parseSolution(string(raw), 1)
	require.NoError(t, err)
	assert.Equal(t, pl, kept, "a tie must not overwrite the stored solution")

	better := ProblemResult{ProblemID: "9", RunID: newRunID(), Score: 501, Valid: true}
	require.NoError(t, keepIfBetter(ctx, s, dir, &better, pl))
	assert.True(t, better.Improved)
	meta, err := s.Get(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, better.RunID, meta.RunID)
}
