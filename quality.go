package main

import "fmt"

// groupByInstrument maps each instrument id to the musician indices playing it, in index order.
func groupByInstrument(instruments []int) map[int][]int {
	groups := make(map[int][]int)
	for i, instr := range instruments {
		groups[instr] = append(groups[instr], i)
	}
	return groups
}

// MusicianQualities returns the playing-together bonus of each musician:
// 1 plus the sum of inverse distances to every other musician of the same instrument.
func MusicianQualities(instruments []int, positions []Point) ([]float64, error) {
	qualities := make([]float64, len(instruments))
	for i := range qualities {
		qualities[i] = 1
	}
	for _, idxs := range groupByInstrument(instruments) {
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				i, k := idxs[a], idxs[b]
				d := positions[i].Sub(positions[k]).Norm()
				if d == 0 {
					return nil, fmt.Errorf("musicians %d and %d at (%g, %g): %w",
						i, k, positions[i].X, positions[i].Y, ErrCoincidentMusicians)
				}
				inv := 1 / d
				qualities[i] += inv
				qualities[k] += inv
			}
		}
	}
	return qualities, nil
}
