package main

import (
	"fmt"
	"math"
	"testing"
)

var integrationSeeds = []int64{20230707, 7, 1234}

// festivalProblem is a mid-sized instance: two instrument sections, a
// scattered audience on three sides and a pillar in front of the stage.
func festivalProblem() *Problem {
	p := &Problem{
		RoomWidth:   600,
		RoomHeight:  600,
		Stage:       Stage{X: 200, Y: 250, W: 200, H: 150},
		Instruments: []int{0, 0, 0, 1, 1, 2, 2, 1},
		Pillars: []Pillar{
			{Center: Point{300, 220}, Radius: 10},
		},
		PlayingTogether: true,
	}
	for k := 0; k < 10; k++ {
		f := float64(k)
		p.Attendees = append(p.Attendees,
			Attendee{Pos: Point{60 + 50*f, 120}, Tastes: []float64{10 + f, 5, -3}},
			Attendee{Pos: Point{80, 180 + 30*f}, Tastes: []float64{2, 20 - f, 4}},
			Attendee{Pos: Point{520, 180 + 30*f}, Tastes: []float64{-1, 3, 15}},
		)
	}
	return p
}

// verifyResult runs the checklist against an optimizer result.
func verifyResult(t *testing.T, p *Problem, res Result) {
	t.Helper()

	// 1. one row per musician
	if len(res.Placement) != p.NumMusicians() {
		t.Fatalf("got %d slots, want %d", len(res.Placement), p.NumMusicians())
	}

	for i, s := range res.Placement {
		// 2. finite coordinates
		if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
			t.Errorf("musician %d: non-finite position (%g, %g)", i, s.X, s.Y)
		}
		// 3. volume within bounds
		if s.Volume < 0 || s.Volume > MaxVolume {
			t.Errorf("musician %d: volume %g out of [0, %g]", i, s.Volume, MaxVolume)
		}
	}

	// 4. reported validity agrees with the penalties
	scene := OutOfScenePenalty(p.Stage, res.Placement)
	dist := DistancePenalty(res.Placement)
	if res.Valid != (scene <= 0 && dist <= 0) {
		t.Errorf("valid=%v but scene penalty %g, distance penalty %g", res.Valid, scene, dist)
	}

	// 5. placement satisfies the constraints (soft check -- warn only; the
	// estimate's noise can outweigh a sub-millimetre violation)
	if !res.Valid {
		t.Logf("final placement invalid: scene penalty %g, distance penalty %g", scene, dist)
	}
	if scene > 1 || dist > 1 {
		t.Errorf("final placement far from valid: scene penalty %g, distance penalty %g", scene, dist)
	}

	// 6. reported score recomputes
	recomputed, err := Score(p, res.Placement)
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	if recomputed != res.Score {
		t.Errorf("recomputed score %d != reported %d", recomputed, res.Score)
	}

	// 7. breakdown adds up
	d, err := CalcPlacementDetail(p, res.Placement)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Score != res.Score {
		t.Errorf("detail score %d != reported %d", d.Score, res.Score)
	}
}

func TestFestival(t *testing.T) {
	seeds := integrationSeeds
	if testing.Short() {
		seeds = seeds[:1]
	}

	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			t.Parallel()
			p := festivalProblem()
			cfg := DefaultConfig()
			cfg.Seed = seed
			if testing.Short() {
				cfg.StepCount = 60
			}
			opt, err := NewOptimizer(p, cfg)
			if err != nil {
				t.Fatalf("NewOptimizer: %v", err)
			}
			res, err := opt.Optimize()
			if err != nil {
				t.Fatalf("Optimize: %v", err)
			}
			t.Logf("seed %d: score=%d initial=%d elapsed=%v", seed, res.Score, res.InitialScore, res.Elapsed)
			verifyResult(t, p, res)
		})
	}
}
