package model

import "fmt"

// SpaceID indexes a free space region in a container's region arena.
type SpaceID int32

// NoSpace marks an absent parent or remainder link.
const NoSpace SpaceID = -1

// Space is a positioned free region. Every time a box is placed at the origin
// of a region, the leftover footprint is divided into an offered region (for
// the next box) and a remainder. Both point back to the region they were cut
// from through Parent; the offered region points to its sibling through
// Remainder. The links form a tree and are only used for inspection.
type Space struct {
	ID     SpaceID `json:"id"`
	Name   string  `json:"name,omitempty"`
	Width  int     `json:"width"`
	Depth  int     `json:"depth"`
	Height int     `json:"height"`
	X      int     `json:"x"` // along width
	Y      int     `json:"y"` // along depth
	Z      int     `json:"z"` // along height

	Parent    SpaceID `json:"parent"`
	Remainder SpaceID `json:"remainder"`
}

// NewSpace returns an unlinked region.
func NewSpace(w, d, h, x, y, z int) Space {
	return Space{
		ID:        NoSpace,
		Width:     w,
		Depth:     d,
		Height:    h,
		X:         x,
		Y:         y,
		Z:         z,
		Parent:    NoSpace,
		Remainder: NoSpace,
	}
}

func (s Space) Dims() (int, int, int) {
	return s.Width, s.Depth, s.Height
}

// Area returns the footprint of the region.
func (s Space) Area() int64 {
	return int64(s.Width) * int64(s.Depth)
}

// Fits reports whether b fits in the region as oriented.
func (s Space) Fits(b Box) bool {
	return fitsWithin(s, b.Width, b.Depth, b.Height)
}

// Terminal reports whether the region has no remainder sibling.
func (s Space) Terminal() bool {
	return s.Remainder == NoSpace
}

func (s Space) String() string {
	return fmt.Sprintf("Space[%d %s at %d,%d,%d]", s.ID, EncodeExtent(s.Width, s.Depth, s.Height), s.X, s.Y, s.Z)
}

// Split divides the region left over after used is placed at its origin.
//
// Two cuts are possible. B keeps the full depth past the used width; A keeps
// the full width past the used depth:
//
//	+-----+----------+   +----------------+
//	|  r  |          |   |       A        |
//	+-----+    B     |   +-----+----------+
//	|  U  |          |   |  U  |    r     |
//	+-----+----------+   +-----+----------+
//
// Depth runs up the page. The cut with the larger footprint is tried first,
// B on a tie, falling back to the other. A cut is taken only if it is non-empty and holds next as
// oriented. The other piece (r) becomes the remainder. ok is false when used
// does not fit the footprint or neither cut holds next.
//
// Both returned regions have Parent set to s.ID; IDs and the Remainder link
// are assigned when they are added to a container.
func (s Space) Split(used, next Box) (offered, remainder Space, ok bool) {
	if s.Width < used.Width || s.Depth < used.Depth {
		return Space{}, Space{}, false
	}

	b := int64(s.Width-used.Width) * int64(s.Depth)
	a := int64(s.Width) * int64(s.Depth-used.Depth)

	if b >= a {
		if b > 0 {
			if offered, remainder, ok = s.splitB(used, next); ok {
				return offered, remainder, true
			}
		}
		if a > 0 {
			return s.splitA(used, next)
		}
		return Space{}, Space{}, false
	}

	if a > 0 {
		if offered, remainder, ok = s.splitA(used, next); ok {
			return offered, remainder, true
		}
	}
	if b > 0 {
		return s.splitB(used, next)
	}
	return Space{}, Space{}, false
}

func (s Space) splitA(used, next Box) (Space, Space, bool) {
	if s.Width < next.Width || s.Height < next.Height || s.Depth-used.Depth < next.Depth {
		return Space{}, Space{}, false
	}
	offered := NewSpace(s.Width, s.Depth-used.Depth, s.Height, s.X, s.Y+used.Depth, s.Z)
	remainder := NewSpace(s.Width-used.Width, used.Depth, s.Height, s.X+used.Width, s.Y, s.Z)
	offered.Parent = s.ID
	remainder.Parent = s.ID
	return offered, remainder, true
}

func (s Space) splitB(used, next Box) (Space, Space, bool) {
	if s.Width-used.Width < next.Width || s.Height < next.Height || s.Depth < next.Depth {
		return Space{}, Space{}, false
	}
	offered := NewSpace(s.Width-used.Width, s.Depth, s.Height, s.X+used.Width, s.Y, s.Z)
	remainder := NewSpace(used.Width, s.Depth-used.Depth, s.Height, s.X, s.Y+used.Depth, s.Z)
	offered.Parent = s.ID
	remainder.Parent = s.ID
	return offered, remainder, true
}
