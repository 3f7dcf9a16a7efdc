package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type solutionPlacement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// solutionFile is the submission format.
type solutionFile struct {
	Placements []solutionPlacement `json:"placements"`
	Volumes    []float64           `json:"volumes"`
}

func encodeSolution(pl Placement) ([]byte, error) {
	sf := solutionFile{
		Placements: make([]solutionPlacement, len(pl)),
		Volumes:    make([]float64, len(pl)),
	}
	for i, s := range pl {
		sf.Placements[i] = solutionPlacement{X: s.X, Y: s.Y}
		sf.Volumes[i] = s.Volume
	}
	return json.Marshal(sf)
}

// WriteSolution stores a placement in the submission format.
func WriteSolution(path string, pl Placement) error {
	data, err := encodeSolution(pl)
	if err != nil {
		return fmt.Errorf("encode solution: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MusicianDetail holds one musician's share of the exact score.
type MusicianDetail struct {
	Index      int
	Instrument int
	X, Y       float64
	Volume     float64
	Quality    float64
	Score      int64
}

// PlacementDetail is the per-musician breakdown of a placement's exact score.
type PlacementDetail struct {
	Score     int64
	Valid     bool
	ScenePen  float64
	DistPen   float64
	Musicians []MusicianDetail
}

// CalcPlacementDetail computes the same score as Score but also returns the
// per-musician breakdown for formatted output.
func CalcPlacementDetail(p *Problem, pl Placement) (PlacementDetail, error) {
	contrib, qualities, err := scoreContributions(p.Instruments, pl, p.Attendees, p.Pillars, p.PlayingTogether)
	if err != nil {
		return PlacementDetail{}, err
	}
	d := PlacementDetail{
		ScenePen:  OutOfScenePenalty(p.Stage, pl),
		DistPen:   DistancePenalty(pl),
		Musicians: make([]MusicianDetail, len(pl)),
	}
	d.Valid = d.ScenePen <= 0 && d.DistPen <= 0
	for i, s := range pl {
		d.Musicians[i] = MusicianDetail{
			Index:      i,
			Instrument: p.Instruments[i],
			X:          s.X,
			Y:          s.Y,
			Volume:     s.Volume,
			Quality:    qualities[i],
			Score:      contrib[i],
		}
		d.Score += contrib[i]
	}
	return d, nil
}

// FormatDetail produces a plain-text report of a placement.
func FormatDetail(d PlacementDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "score=%d valid=%v scene_penalty=%.4g distance_penalty=%.4g\n",
		d.Score, d.Valid, d.ScenePen, d.DistPen)
	fmt.Fprintf(&b, "%4s %5s %10s %10s %6s %8s %14s\n", "#", "instr", "x", "y", "vol", "quality", "score")
	for _, m := range d.Musicians {
		fmt.Fprintf(&b, "%4d %5d %10.2f %10.2f %6.2f %8.4f %14d\n",
			m.Index, m.Instrument, m.X, m.Y, m.Volume, m.Quality, m.Score)
	}
	return b.String()
}
