package main

// InhibitionMatrix[j][i] is true when attendee j cannot hear musician i.
type InhibitionMatrix [][]bool

// blocks reports whether a circle at b with radius r cuts the open segment
// from a along unit direction u of length l.
func blocks(a, u Point, l float64, b Point, r float64) bool {
	ab := b.Sub(a)
	proj := ab.Dot(u)
	if proj <= 0 || proj >= l {
		return false
	}
	dist := ab.Cross(u)
	if dist < 0 {
		dist = -dist
	}
	return dist < r
}

// blocked reports whether the line of sound from attendee to musician target
// is obstructed by any other musician or any pillar. The caller guarantees
// the attendee and the target do not coincide.
func blocked(att Point, target int, musicians []Point, pillars []Pillar) bool {
	am := musicians[target].Sub(att)
	l := am.Norm()
	u := Point{am.X / l, am.Y / l}

	for k, m := range musicians {
		if k == target {
			continue
		}
		if blocks(att, u, l, m, MusicianBlockRadius) {
			return true
		}
	}
	for _, p := range pillars {
		if blocks(att, u, l, p.Center, p.Radius) {
			return true
		}
	}
	return false
}

// BuildInhibitionMatrix computes occlusion for every attendee-musician pair.
// Pairs where the attendee coincides with the musician are left unblocked;
// scoring rejects them before they are used.
func BuildInhibitionMatrix(musicians, attendees []Point, pillars []Pillar) InhibitionMatrix {
	m := make(InhibitionMatrix, len(attendees))
	for j, att := range attendees {
		row := make([]bool, len(musicians))
		for i := range musicians {
			if musicians[i].Sub(att).Norm2() == 0 {
				continue
			}
			row[i] = blocked(att, i, musicians, pillars)
		}
		m[j] = row
	}
	return m
}
