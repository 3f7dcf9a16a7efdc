package main

import "math"

// OutOfScenePenalty sums how far musicians stray past the stage shrunk by
// ClearanceRadius on every side. Zero when every musician keeps the clearance.
func OutOfScenePenalty(stage Stage, placement Placement) float64 {
	minX, maxX := stage.X+ClearanceRadius, stage.X+stage.W-ClearanceRadius
	minY, maxY := stage.Y+ClearanceRadius, stage.Y+stage.H-ClearanceRadius

	penalty := 0.0
	for _, s := range placement {
		penalty += math.Max(0, minX-s.X)
		penalty += math.Max(0, s.X-maxX)
		penalty += math.Max(0, minY-s.Y)
		penalty += math.Max(0, s.Y-maxY)
	}
	return penalty
}

// DistancePenalty sums, over every musician pair closer than ClearanceRadius,
// the missing distance.
func DistancePenalty(placement Placement) float64 {
	penalty := 0.0
	for i := 0; i < len(placement); i++ {
		for k := i + 1; k < len(placement); k++ {
			d := placement[i].Pos().Sub(placement[k].Pos()).Norm()
			penalty += math.Max(0, ClearanceRadius-d)
		}
	}
	return penalty
}

// Valid reports whether a placement satisfies both the stage and the spacing constraints.
func Valid(stage Stage, placement Placement) bool {
	return OutOfScenePenalty(stage, placement) <= 0 && DistancePenalty(placement) <= 0
}
