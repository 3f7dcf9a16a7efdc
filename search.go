package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// initialVolumeSpread is the std-dev of the initial volumes around Config.InitialVolume.
const initialVolumeSpread = 0.1

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer runs an annealed evolutionary strategy over musician placements and volumes.
type Optimizer struct {
	problem *Problem
	cfg     Config
	seed    int64
	rng     *rand.Rand

	// initial mutation scale per coordinate: x, y, volume
	sigma0 [3]float64

	best        Placement
	bestFitness float64
	bestValid   bool
}

// Result is the outcome of one search.
type Result struct {
	Placement    Placement
	Score        int64
	Valid        bool
	InitialScore int64
	Seed         int64
	Elapsed      time.Duration
}

type candidate struct {
	placement Placement
	fitness   float64
	valid     bool
}

// NewOptimizer creates an optimizer for the given problem. Both the problem
// and the configuration are validated here, so Optimize only fails on
// placements the scorer cannot evaluate.
func NewOptimizer(p *Problem, cfg Config) (*Optimizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Optimizer{
		problem: p,
		cfg:     cfg,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		sigma0: [3]float64{
			cfg.SigmaFractionX * p.Stage.W,
			cfg.SigmaFractionY * p.Stage.H,
			cfg.SigmaVolume,
		},
	}, nil
}

// ── Placement sampling ──────────────────────────────────────────────

func (o *Optimizer) initialPlacement() Placement {
	c := o.problem.Stage.Center()
	pl := make(Placement, o.problem.NumMusicians())
	for i := range pl {
		pl[i] = Slot{
			X:      c.X + o.rng.NormFloat64()*o.cfg.InitialSpread,
			Y:      c.Y + o.rng.NormFloat64()*o.cfg.InitialSpread,
			Volume: clampVolume(o.cfg.InitialVolume + o.rng.NormFloat64()*initialVolumeSpread),
		}
	}
	return pl
}

// sigma decays geometrically from sigma0 at step 0 towards
// sigma0*FinalSigmaFraction at the end of the budget.
func (o *Optimizer) sigma(step int) [3]float64 {
	k := math.Pow(o.cfg.FinalSigmaFraction, float64(step)/float64(o.cfg.StepCount))
	return [3]float64{o.sigma0[0] * k, o.sigma0[1] * k, o.sigma0[2] * k}
}

// mutate perturbs each coordinate of parent with probability
// MutationProbability; the rest are copied unchanged.
func (o *Optimizer) mutate(parent Placement, sigma [3]float64) Placement {
	child := clonePlacement(parent)
	p := o.cfg.MutationProbability
	for i := range child {
		s := &child[i]
		if o.rng.Float64() < p {
			s.X += o.rng.NormFloat64() * sigma[0]
		}
		if o.rng.Float64() < p {
			s.Y += o.rng.NormFloat64() * sigma[1]
		}
		if o.rng.Float64() < p {
			s.Volume = clampVolume(s.Volume + o.rng.NormFloat64()*sigma[2])
		}
	}
	return child
}

// ── Fitness ─────────────────────────────────────────────────────────

// fitness combines the Monte-Carlo score estimate with the weighted
// constraint penalties. Placements the scorer rejects get -Inf.
func (o *Optimizer) fitness(rng *rand.Rand, pl Placement) candidate {
	scenePen := OutOfScenePenalty(o.problem.Stage, pl)
	distPen := DistancePenalty(pl)
	c := candidate{placement: pl, valid: scenePen <= 0 && distPen <= 0}

	mc, err := MCScore(rng, o.problem, pl, o.cfg.Sampling, o.cfg.NEval)
	if err != nil {
		if Verbose {
			fmt.Fprintf(logw(), "[verbose] candidate rejected: %v\n", err)
		}
		c.fitness = math.Inf(-1)
		return c
	}
	c.fitness = mc*o.cfg.ScoreWeight +
		scenePen*o.cfg.ScenePenaltyWeight +
		distPen*o.cfg.DistancePenaltyWeight
	return c
}

func (o *Optimizer) workers() int {
	if o.cfg.Workers > 0 {
		return o.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// evaluate scores a population concurrently. Every candidate gets its own
// RNG, seeded in population order from the search RNG, so the outcome does
// not depend on the worker count or scheduling.
func (o *Optimizer) evaluate(population []Placement) []candidate {
	seeds := make([]int64, len(population))
	for i := range seeds {
		seeds[i] = o.rng.Int63()
	}

	out := make([]candidate, len(population))
	var g errgroup.Group
	g.SetLimit(o.workers())
	for i := range population {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))
			out[i] = o.fitness(rng, population[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ── Acceptance ──────────────────────────────────────────────────────

func (o *Optimizer) lateStage(step int) bool {
	return float64(step) >= o.cfg.LateStageFraction*float64(o.cfg.StepCount)
}

// accept reports whether c replaces the current best: it must be strictly
// fitter and, late in the search, must not trade a valid best for an invalid one.
func (o *Optimizer) accept(step int, c candidate) bool {
	if !(c.fitness > o.bestFitness) {
		return false
	}
	if o.lateStage(step) && o.bestValid && !c.valid {
		return false
	}
	return true
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize runs the full search and returns the best placement with its exact score.
func (o *Optimizer) Optimize() (Result, error) {
	start := time.Now()
	p := o.problem

	fmt.Fprintf(logw(), "[init] musicians=%d attendees=%d pillars=%d steps=%d population=%d seed=%d\n",
		p.NumMusicians(), len(p.Attendees), len(p.Pillars), o.cfg.StepCount, o.cfg.PopulationSize, o.seed)

	initial := o.initialPlacement()
	first := o.evaluate([]Placement{initial})[0]
	o.best, o.bestFitness, o.bestValid = first.placement, first.fitness, first.valid

	res := Result{Seed: o.seed}
	if s, err := Score(p, initial); err == nil {
		res.InitialScore = s
	} else if Verbose {
		fmt.Fprintf(logw(), "[verbose] initial placement not scorable: %v\n", err)
	}

	for step := 0; step < o.cfg.StepCount; step++ {
		sigma := o.sigma(step)
		parent := o.best
		population := make([]Placement, o.cfg.PopulationSize)
		for i := range population {
			population[i] = o.mutate(parent, sigma)
		}

		accepted := 0
		for _, c := range o.evaluate(population) {
			if o.accept(step, c) {
				o.best, o.bestFitness, o.bestValid = c.placement, c.fitness, c.valid
				accepted++
			}
		}
		if Verbose {
			fmt.Fprintf(logw(), "[step] %d/%d sigma=(%.3g, %.3g, %.3g) accepted=%d fitness=%.6g valid=%v\n",
				step+1, o.cfg.StepCount, sigma[0], sigma[1], sigma[2], accepted, o.bestFitness, o.bestValid)
		}
	}

	res.Placement = o.best
	res.Valid = Valid(p.Stage, o.best)
	res.Elapsed = time.Since(start)
	score, err := Score(p, o.best)
	if err != nil {
		return res, fmt.Errorf("score final placement: %w", err)
	}
	res.Score = score

	fmt.Fprintf(logw(), "[done] score=%d valid=%v initial=%d elapsed=%v\n",
		res.Score, res.Valid, res.InitialScore, res.Elapsed)
	return res, nil
}

func logw() *os.File { return os.Stderr }
