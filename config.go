package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the search tuning parameters. Adjust these to trade speed for solution quality.
type Config struct {
	// Seed feeds the search RNG. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`
	// StepCount is the number of annealing steps.
	StepCount int `yaml:"step_count"`
	// PopulationSize is the number of candidates mutated from the current best per step.
	PopulationSize int `yaml:"population_size"`
	// MutationProbability is the chance each coordinate of a candidate is perturbed.
	MutationProbability float64 `yaml:"mutation_probability"`

	// SigmaFractionX and SigmaFractionY set the initial mutation scale as a fraction of stage width/height.
	SigmaFractionX float64 `yaml:"sigma_fraction_x"`
	SigmaFractionY float64 `yaml:"sigma_fraction_y"`
	// SigmaVolume is the initial mutation scale of volumes.
	SigmaVolume float64 `yaml:"sigma_volume"`
	// FinalSigmaFraction is what is left of the mutation scale at the last step.
	FinalSigmaFraction float64 `yaml:"final_sigma_fraction"`

	// InitialSpread is the std-dev of the initial positions around the stage center.
	InitialSpread float64 `yaml:"initial_spread"`
	// InitialVolume is the mean initial volume; it is clamped to [0, MaxVolume].
	InitialVolume float64 `yaml:"initial_volume"`

	ScoreWeight           float64 `yaml:"score_weight"`
	ScenePenaltyWeight    float64 `yaml:"scene_penalty_weight"`
	DistancePenaltyWeight float64 `yaml:"distance_penalty_weight"`

	// LateStageFraction is the share of the step budget after which a valid best
	// may only be replaced by a valid candidate.
	LateStageFraction float64 `yaml:"late_stage_fraction"`

	Sampling SamplingRatios `yaml:"sampling"`
	// NEval is the number of Monte-Carlo trials per fitness evaluation.
	NEval int `yaml:"n_eval"`

	// Workers bounds concurrent candidate evaluation. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the stock search parameters.
func DefaultConfig() Config {
	return Config{
		StepCount:             100,
		PopulationSize:        20,
		MutationProbability:   0.2,
		SigmaFractionX:        0.25,
		SigmaFractionY:        0.25,
		SigmaVolume:           2.5,
		FinalSigmaFraction:    1e-3,
		InitialSpread:         1,
		InitialVolume:         MaxVolume,
		ScoreWeight:           1,
		ScenePenaltyWeight:    -1e9,
		DistancePenaltyWeight: -1e9,
		LateStageFraction:     0.7,
		Sampling:              SamplingRatios{Musicians: 0.1, Attendees: 0.1, Pillars: 0.1},
		NEval:                 50,
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.StepCount <= 0:
		return fmt.Errorf("step_count %d: %w", c.StepCount, ErrBadConfig)
	case c.PopulationSize <= 0:
		return fmt.Errorf("population_size %d: %w", c.PopulationSize, ErrBadConfig)
	case c.MutationProbability < 0 || c.MutationProbability > 1:
		return fmt.Errorf("mutation_probability %g: %w", c.MutationProbability, ErrBadConfig)
	case c.FinalSigmaFraction <= 0 || c.FinalSigmaFraction > 1:
		return fmt.Errorf("final_sigma_fraction %g: %w", c.FinalSigmaFraction, ErrBadConfig)
	case c.LateStageFraction < 0 || c.LateStageFraction > 1:
		return fmt.Errorf("late_stage_fraction %g: %w", c.LateStageFraction, ErrBadConfig)
	case c.NEval <= 0:
		return fmt.Errorf("n_eval %d: %w", c.NEval, ErrBadConfig)
	case c.Workers < 0:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrBadConfig)
	}
	return c.Sampling.validate()
}

// Verbose controls whether per-step search progress is printed to stderr.
var Verbose bool
