package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusicianQualities(t *testing.T) {
	instruments := []int{1, 2, 1, 2, 2, 3}
	positions := []Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {1, 3}}

	q, err := MusicianQualities(instruments, positions)
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	want := []float64{1 + .5, 1 + inv + inv, 1 + .5, 1 + .5 + inv, 1 + .5 + inv, 1}
	require.Len(t, q, len(want))
	for i := range want {
		assert.InDelta(t, want[i], q[i], 1e-12, "musician %d", i)
	}
}

func TestMusicianQualitiesSingletons(t *testing.T) {
	q, err := MusicianQualities([]int{0, 1, 2}, []Point{{0, 0}, {0, 0.5}, {3, 3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, q)
}

func TestMusicianQualitiesCoincident(t *testing.T) {
	_, err := MusicianQualities([]int{4, 4}, []Point{{7, 7}, {7, 7}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoincidentMusicians))

	// Different instruments may share a spot as far as quality is concerned.
	_, err = MusicianQualities([]int{4, 5}, []Point{{7, 7}, {7, 7}})
	assert.NoError(t, err)
}

func TestGroupByInstrument(t *testing.T) {
	g := groupByInstrument([]int{3, 1, 3, 3, 1})
	assert.Equal(t, map[int][]int{3: {0, 2, 3}, 1: {1, 4}}, g)
}
