package main

import (
	"fmt"
	"math"
	"math/rand"
)

// SamplingRatios are the fractions of musicians, attendees and pillars drawn per trial.
type SamplingRatios struct {
	Musicians float64 `yaml:"musicians"`
	Attendees float64 `yaml:"attendees"`
	Pillars   float64 `yaml:"pillars"`
}

func (r SamplingRatios) validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"musicians", r.Musicians},
		{"attendees", r.Attendees},
		{"pillars", r.Pillars},
	}
	for _, c := range checks {
		if !(c.v > 0 && c.v <= 1) {
			return fmt.Errorf("%s ratio %g: %w", c.name, c.v, ErrSamplingRatio)
		}
	}
	return nil
}

// sampleSize is ceil(n*ratio), at least one element of a non-empty set.
func sampleSize(n int, ratio float64) int {
	if n == 0 {
		return 0
	}
	k := int(math.Ceil(float64(n) * ratio))
	return min(n, max(1, k))
}

// sampleIndices draws k distinct indices of [0, n) uniformly.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	return rng.Perm(n)[:k]
}

// MCScore estimates Score by averaging n exact scores over random subsets of
// musicians, attendees and pillars, rescaled by the musician and attendee
// ratios. Dropping pillars and musicians drops potential blockers, so the
// estimate leans high; use it for ranking, not reporting.
func MCScore(rng *rand.Rand, p *Problem, placement Placement, ratios SamplingRatios, n int) (float64, error) {
	if err := ratios.validate(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("n_eval %d: %w", n, ErrBadConfig)
	}
	if len(placement) != p.NumMusicians() {
		return 0, fmt.Errorf("%d musicians, %d slots: %w", p.NumMusicians(), len(placement), ErrPlacementSize)
	}

	nMus, nAtt, nPil := p.NumMusicians(), len(p.Attendees), len(p.Pillars)
	kMus := sampleSize(nMus, ratios.Musicians)
	kAtt := sampleSize(nAtt, ratios.Attendees)
	kPil := sampleSize(nPil, ratios.Pillars)

	instruments := make([]int, kMus)
	slots := make(Placement, kMus)
	attendees := make([]Attendee, kAtt)
	pillars := make([]Pillar, kPil)

	var sum float64
	for trial := 0; trial < n; trial++ {
		for a, i := range sampleIndices(rng, nMus, kMus) {
			instruments[a] = p.Instruments[i]
			slots[a] = placement[i]
		}
		for a, j := range sampleIndices(rng, nAtt, kAtt) {
			attendees[a] = p.Attendees[j]
		}
		for a, k := range sampleIndices(rng, nPil, kPil) {
			pillars[a] = p.Pillars[k]
		}
		s, err := scoreSubset(instruments, slots, attendees, pillars, p.PlayingTogether)
		if err != nil {
			return 0, err
		}
		sum += float64(s)
	}
	return sum / float64(n) / ratios.Musicians / ratios.Attendees, nil
}
