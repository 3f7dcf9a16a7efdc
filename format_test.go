package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcPlacementDetailMatchesScore(t *testing.T) {
	p, pl := orchestraProblem()
	exact, err := Score(p, pl)
	require.NoError(t, err)

	d, err := CalcPlacementDetail(p, pl)
	require.NoError(t, err)
	assert.Equal(t, exact, d.Score)
	assert.Equal(t, Valid(p.Stage, pl), d.Valid)
	require.Len(t, d.Musicians, p.NumMusicians())

	var sum int64
	for i, m := range d.Musicians {
		sum += m.Score
		assert.Equal(t, p.Instruments[i], m.Instrument)
		assert.GreaterOrEqual(t, m.Quality, 1.0)
	}
	assert.Equal(t, exact, sum)

	out := FormatDetail(d)
	assert.True(t, strings.HasPrefix(out, "score="))
	assert.Equal(t, p.NumMusicians()+2, strings.Count(out, "\n"))
}

func TestEncodeSolutionReadsBack(t *testing.T) {
	_, pl := orchestraProblem()
	data, err := encodeSolution(pl)
	require.NoError(t, err)

	back, err := parseSolution(string(data), len(pl))
	require.NoError(t, err)
	assert.Equal(t, pl, back)
}
