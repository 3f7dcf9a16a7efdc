package main

import (
	"fmt"
	"math"
)

const (
	// MaxVolume is the upper bound of a musician's volume; the lower bound is 0.
	MaxVolume = 10.0
	// NeutralVolume is used when a placement carries no volume column.
	NeutralVolume = 1.0
	// MusicianBlockRadius is how close to a line of sound another musician must stand to block it.
	MusicianBlockRadius = 5.0
	// ClearanceRadius is the required distance to the stage edge and between musicians.
	ClearanceRadius = 10.0
)

type Point struct {
	X float64
	Y float64
}

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross is the z component of the 2-D cross product.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

func (p Point) Norm2() float64 { return p.X*p.X + p.Y*p.Y }

func (p Point) Norm() float64 { return math.Sqrt(p.Norm2()) }

// Stage is the axis-aligned rectangle musicians are placed on. (X, Y) is the bottom-left corner.
type Stage struct {
	X float64
	Y float64
	W float64
	H float64
}

func (s Stage) Center() Point {
	return Point{s.X + 0.5*s.W, s.Y + 0.5*s.H}
}

type Pillar struct {
	Center Point
	Radius float64
}

type Attendee struct {
	Pos    Point
	Tastes []float64 // indexed by instrument id
}

// Problem is immutable once loaded.
type Problem struct {
	RoomWidth   float64
	RoomHeight  float64
	Stage       Stage
	Instruments []int // instrument id per musician
	Attendees   []Attendee
	Pillars     []Pillar

	// PlayingTogether enables the same-instrument quality bonus. Problems
	// that declare pillars (even an empty list) use it; older ones do not.
	PlayingTogether bool
}

func (p *Problem) NumMusicians() int { return len(p.Instruments) }

// Validate checks the load-time invariants the scorer relies on.
func (p *Problem) Validate() error {
	if len(p.Instruments) == 0 {
		return ErrEmptyMusicians
	}
	if len(p.Attendees) == 0 {
		return ErrEmptyAttendees
	}
	for i, instr := range p.Instruments {
		if instr < 0 {
			return fmt.Errorf("musician %d: negative instrument %d: %w", i, instr, ErrMissingTaste)
		}
		for j := range p.Attendees {
			if instr >= len(p.Attendees[j].Tastes) {
				return fmt.Errorf("attendee %d has %d tastes, musician %d plays %d: %w",
					j, len(p.Attendees[j].Tastes), i, instr, ErrMissingTaste)
			}
		}
	}
	for k, pil := range p.Pillars {
		if pil.Radius < 0 {
			return fmt.Errorf("pillar %d: negative radius %g: %w", k, pil.Radius, ErrBadProblem)
		}
	}
	if p.Stage.W <= 0 || p.Stage.H <= 0 {
		return fmt.Errorf("stage %gx%g: %w", p.Stage.W, p.Stage.H, ErrBadProblem)
	}
	return nil
}

// Slot is one row of a placement: a musician's position and volume.
type Slot struct {
	X      float64
	Y      float64
	Volume float64
}

func (s Slot) Pos() Point { return Point{s.X, s.Y} }

// Placement holds one Slot per musician, in musician order.
type Placement []Slot

func clonePlacement(p Placement) Placement {
	if p == nil {
		return nil
	}
	c := make(Placement, len(p))
	copy(c, p)
	return c
}

func (p Placement) Positions() []Point {
	pts := make([]Point, len(p))
	for i := range p {
		pts[i] = p[i].Pos()
	}
	return pts
}

func clampVolume(v float64) float64 {
	return math.Min(MaxVolume, math.Max(0, v))
}
