package model

import "fmt"

// Placement is a box bound to the free space region it occupies. The box
// sits at the region's origin.
type Placement struct {
	Box   Box   `json:"box"`
	Space Space `json:"space"`
}

// Max returns the far corner of the volume occupied by the box.
func (p Placement) Max() (x, y, z int) {
	return p.Space.X + p.Box.Width, p.Space.Y + p.Box.Depth, p.Space.Z + p.Box.Height
}

// Intersects reports whether the occupied volumes of p and other overlap.
// A non-empty placement intersects itself.
func (p Placement) Intersects(other Placement) bool {
	px, py, pz := p.Max()
	ox, oy, oz := other.Max()
	return p.Space.X < ox && other.Space.X < px &&
		p.Space.Y < oy && other.Space.Y < py &&
		p.Space.Z < oz && other.Space.Z < pz
}

func (p Placement) String() string {
	return fmt.Sprintf("%s at %d,%d,%d", p.Box, p.Space.X, p.Space.Y, p.Space.Z)
}

// Level is one shelf of placements sharing a z origin.
type Level struct {
	Placements []Placement `json:"placements"`
}

// Add appends a placement to the level.
func (l *Level) Add(p Placement) {
	l.Placements = append(l.Placements, p)
}

func (l Level) Len() int {
	return len(l.Placements)
}

func (l Level) Get(i int) Placement {
	return l.Placements[i]
}

// Height returns the height of the tallest box on the level, 0 if empty.
func (l Level) Height() int {
	height := 0
	for _, p := range l.Placements {
		if p.Box.Height > height {
			height = p.Box.Height
		}
	}
	return height
}

// Validate checks that no two placements on the level overlap and that
// every placement is non-empty.
func (l Level) Validate() error {
	for i, a := range l.Placements {
		for j, b := range l.Placements {
			if i == j {
				if !a.Intersects(b) {
					return fmt.Errorf("%w: placement %d is empty", ErrOverlap, i)
				}
				continue
			}
			if j > i && a.Intersects(b) {
				return fmt.Errorf("%w: %d (%s) vs %d (%s)", ErrOverlap, i, a, j, b)
			}
		}
	}
	return nil
}

func (l Level) clone() Level {
	placements := make([]Placement, len(l.Placements))
	copy(placements, l.Placements)
	return Level{Placements: placements}
}
