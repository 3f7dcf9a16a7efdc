package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 99
step_count: 250
sampling:
  musicians: 0.5
  attendees: 0.2
  pillars: 1
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 250, cfg.StepCount)
	assert.Equal(t, SamplingRatios{Musicians: 0.5, Attendees: 0.2, Pillars: 1}, cfg.Sampling)

	def := DefaultConfig()
	assert.Equal(t, def.PopulationSize, cfg.PopulationSize)
	assert.Equal(t, def.ScenePenaltyWeight, cfg.ScenePenaltyWeight)
	assert.Equal(t, def.NEval, cfg.NEval)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampling:\n  musicians: 0\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrSamplingRatio)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NoSteps", func(c *Config) { c.StepCount = 0 }},
		{"NoPopulation", func(c *Config) { c.PopulationSize = -1 }},
		{"MutationAboveOne", func(c *Config) { c.MutationProbability = 1.2 }},
		{"NoAnnealTarget", func(c *Config) { c.FinalSigmaFraction = 0 }},
		{"LateStageAboveOne", func(c *Config) { c.LateStageFraction = 2 }},
		{"NoTrials", func(c *Config) { c.NEval = 0 }},
		{"NegativeWorkers", func(c *Config) { c.Workers = -2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrBadConfig)
		})
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig("search.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
