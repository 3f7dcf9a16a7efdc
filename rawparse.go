package main

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

func readPoint(v gjson.Result) Point {
	arr := v.Array()
	if len(arr) < 2 {
		return Point{}
	}
	return Point{arr[0].Float(), arr[1].Float()}
}

func readFloatSlice(v gjson.Result) []float64 {
	if !v.IsArray() {
		return nil
	}
	var out []float64
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, item.Float())
		return true
	})
	return out
}

func readIntSlice(v gjson.Result) []int {
	if !v.IsArray() {
		return nil
	}
	var out []int
	v.ForEach(func(_, item gjson.Result) bool {
		out = append(out, int(item.Int()))
		return true
	})
	return out
}

// parseProblem builds a Problem from the contest JSON format. The presence of
// the "pillars" key, even with an empty list, turns on the playing-together bonus.
func parseProblem(problemJSON string) (*Problem, error) {
	if !gjson.Valid(problemJSON) {
		return nil, fmt.Errorf("problem: invalid JSON: %w", ErrBadProblem)
	}
	root := gjson.Parse(problemJSON)

	bl := readPoint(root.Get("stage_bottom_left"))
	p := &Problem{
		RoomWidth:  root.Get("room_width").Float(),
		RoomHeight: root.Get("room_height").Float(),
		Stage: Stage{
			X: bl.X,
			Y: bl.Y,
			W: root.Get("stage_width").Float(),
			H: root.Get("stage_height").Float(),
		},
		Instruments: readIntSlice(root.Get("musicians")),
	}

	root.Get("attendees").ForEach(func(_, a gjson.Result) bool {
		p.Attendees = append(p.Attendees, Attendee{
			Pos:    Point{a.Get("x").Float(), a.Get("y").Float()},
			Tastes: readFloatSlice(a.Get("tastes")),
		})
		return true
	})

	pillars := root.Get("pillars")
	p.PlayingTogether = pillars.Exists() && pillars.Type != gjson.Null
	if pillars.IsArray() {
		pillars.ForEach(func(_, v gjson.Result) bool {
			p.Pillars = append(p.Pillars, Pillar{
				Center: readPoint(v.Get("center")),
				Radius: v.Get("radius").Float(),
			})
			return true
		})
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	return p, nil
}

// parseSolution reads a placement in the submission format. Missing volumes
// default to NeutralVolume; present ones are clamped to [0, MaxVolume].
func parseSolution(solutionJSON string, nMusicians int) (Placement, error) {
	if !gjson.Valid(solutionJSON) {
		return nil, fmt.Errorf("solution: invalid JSON: %w", ErrPlacementSize)
	}
	root := gjson.Parse(solutionJSON)

	var pl Placement
	root.Get("placements").ForEach(func(_, v gjson.Result) bool {
		pl = append(pl, Slot{X: v.Get("x").Float(), Y: v.Get("y").Float(), Volume: NeutralVolume})
		return true
	})
	if len(pl) != nMusicians {
		return nil, fmt.Errorf("solution: %d placements for %d musicians: %w", len(pl), nMusicians, ErrPlacementSize)
	}

	volumes := root.Get("volumes")
	if volumes.IsArray() {
		vs := readFloatSlice(volumes)
		if len(vs) != nMusicians {
			return nil, fmt.Errorf("solution: %d volumes for %d musicians: %w", len(vs), nMusicians, ErrPlacementSize)
		}
		for i, v := range vs {
			pl[i].Volume = clampVolume(v)
		}
	}
	return pl, nil
}

// LoadProblem reads and validates a problem file.
func LoadProblem(path string) (*Problem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := parseProblem(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadSolution reads a solution file for a problem with nMusicians musicians.
func LoadSolution(path string, nMusicians int) (Placement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	pl, err := parseSolution(string(raw), nMusicians)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pl, nil
}
