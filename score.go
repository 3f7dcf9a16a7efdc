package main

import (
	"fmt"
	"math"
)

// pairScore is one attendee's impression of one audible musician, rounded up
// to a whole unit.
func pairScore(taste, quality, volume, d2 float64) int64 {
	return int64(math.Ceil(1_000_000 * taste * quality * volume / d2))
}

// scoreContributions returns, per musician, the summed impression over all
// attendees. Inputs are parallel slices, so callers may pass any subset of a
// problem's musicians, attendees and pillars.
func scoreContributions(
	instruments []int,
	placement Placement,
	attendees []Attendee,
	pillars []Pillar,
	together bool,
) ([]int64, []float64, error) {
	if len(instruments) != len(placement) {
		return nil, nil, fmt.Errorf("%d musicians, %d slots: %w", len(instruments), len(placement), ErrPlacementSize)
	}
	positions := placement.Positions()

	attPos := make([]Point, len(attendees))
	for j := range attendees {
		attPos[j] = attendees[j].Pos
		for i, m := range positions {
			if m.Sub(attPos[j]).Norm2() == 0 {
				return nil, nil, fmt.Errorf("attendee %d, musician %d at (%g, %g): %w",
					j, i, m.X, m.Y, ErrCoincidentPoints)
			}
		}
	}

	var qualities []float64
	if together {
		var err error
		qualities, err = MusicianQualities(instruments, positions)
		if err != nil {
			return nil, nil, err
		}
	} else {
		qualities = make([]float64, len(instruments))
		for i := range qualities {
			qualities[i] = 1
		}
	}

	inhibited := BuildInhibitionMatrix(positions, attPos, pillars)

	contrib := make([]int64, len(instruments))
	for j := range attendees {
		tastes := attendees[j].Tastes
		for i := range positions {
			if inhibited[j][i] {
				continue
			}
			d2 := positions[i].Sub(attPos[j]).Norm2()
			contrib[i] += pairScore(tastes[instruments[i]], qualities[i], placement[i].Volume, d2)
		}
	}
	return contrib, qualities, nil
}

func scoreSubset(instruments []int, placement Placement, attendees []Attendee, pillars []Pillar, together bool) (int64, error) {
	contrib, _, err := scoreContributions(instruments, placement, attendees, pillars, together)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range contrib {
		total += c
	}
	return total, nil
}

// Score computes the exact, occlusion-aware score of a placement.
func Score(p *Problem, placement Placement) (int64, error) {
	return scoreSubset(p.Instruments, placement, p.Attendees, p.Pillars, p.PlayingTogether)
}
