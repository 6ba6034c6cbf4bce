package model

import (
	"errors"
	"fmt"
)

var errNoOpenLevel = errors.New("container has no open level")

// Container is a fixed-size bin filled bottom-up with levels. StackHeight
// is the summed height of the closed levels; the last level is open until
// the next one is added.
//
// A Container is a mutable builder. The search takes a Snapshot before
// trying an arrangement and rolls back when it is abandoned; anything handed
// out of the search is a Clone.
type Container struct {
	Name        string  `json:"name,omitempty"`
	Width       int     `json:"width"`
	Depth       int     `json:"depth"`
	Height      int     `json:"height"`
	StackHeight int     `json:"stack_height"`
	Levels      []Level `json:"levels"`
	Spaces      []Space `json:"spaces,omitempty"` // region arena, indexed by SpaceID
}

func NewContainer(e Extent) *Container {
	return &Container{
		Name:   e.Name,
		Width:  e.Width,
		Depth:  e.Depth,
		Height: e.Height,
	}
}

func (c *Container) Dims() (int, int, int) {
	return c.Width, c.Depth, c.Height
}

// Extent returns the container bounds.
func (c *Container) Extent() Extent {
	return Extent{Name: c.Name, Width: c.Width, Depth: c.Depth, Height: c.Height}
}

// Volume returns the container volume.
func (c *Container) Volume() int64 {
	return c.Extent().Volume()
}

// AddLevel closes the current level, if any, and opens an empty one on top.
func (c *Container) AddLevel() {
	if n := len(c.Levels); n > 0 {
		c.StackHeight += c.Levels[n-1].Height()
	}
	c.Levels = append(c.Levels, Level{})
}

// Add places p on the open level.
func (c *Container) Add(p Placement) error {
	n := len(c.Levels)
	if n == 0 {
		return errNoOpenLevel
	}
	if c.StackHeight+p.Box.Height > c.Height {
		return fmt.Errorf("%w: %s on level %d at stack height %d exceeds %d",
			ErrNegativeFreeSpace, p.Box, n-1, c.StackHeight, c.Height)
	}
	c.Levels[n-1].Add(p)
	return nil
}

// AddSpace stores s in the region arena and returns it with its ID set.
func (c *Container) AddSpace(s Space) Space {
	s.ID = SpaceID(len(c.Spaces))
	c.Spaces = append(c.Spaces, s)
	return s
}

// AddSplit stores a region pair produced by Space.Split and links the
// offered region to its remainder.
func (c *Container) AddSplit(offered, remainder Space) (Space, Space) {
	remainder = c.AddSpace(remainder)
	offered.Remainder = remainder.ID
	offered = c.AddSpace(offered)
	return offered, remainder
}

// Space looks up a region by ID.
func (c *Container) Space(id SpaceID) (Space, bool) {
	if id < 0 || int(id) >= len(c.Spaces) {
		return Space{}, false
	}
	return c.Spaces[id], true
}

// FreeSpace returns the space above the closed levels.
func (c *Container) FreeSpace() (Extent, error) {
	h := c.Height - c.StackHeight
	if h < 0 {
		return Extent{}, fmt.Errorf("%w: %d", ErrNegativeFreeSpace, h)
	}
	return Extent{Width: c.Width, Depth: c.Depth, Height: h}, nil
}

// BoxCount returns the number of placed boxes.
func (c *Container) BoxCount() int {
	count := 0
	for _, l := range c.Levels {
		count += l.Len()
	}
	return count
}

// Get returns the placement at the given slot of the given level.
func (c *Container) Get(level, index int) Placement {
	return c.Levels[level].Get(index)
}

// UsedSpace returns the bounding extent of all placed boxes, measured from
// the container origin.
func (c *Container) UsedSpace() Extent {
	var used Extent
	for _, l := range c.Levels {
		for _, p := range l.Placements {
			x, y, z := p.Max()
			used.Width = max(used.Width, x)
			used.Depth = max(used.Depth, y)
			used.Height = max(used.Height, z)
		}
	}
	return used
}

// UsedVolume returns the summed volume of the placed boxes.
func (c *Container) UsedVolume() int64 {
	var v int64
	for _, l := range c.Levels {
		for _, p := range l.Placements {
			v += p.Box.Volume()
		}
	}
	return v
}

// FillRatio returns the fraction of the container volume taken by boxes.
func (c *Container) FillRatio() float64 {
	total := c.Volume()
	if total == 0 {
		return 0
	}
	return float64(c.UsedVolume()) / float64(total)
}

// Snapshot marks the current build state for Rollback.
type Snapshot struct {
	levels      int
	placements  int
	stackHeight int
	spaces      int
}

func (c *Container) Snapshot() Snapshot {
	s := Snapshot{
		levels:      len(c.Levels),
		stackHeight: c.StackHeight,
		spaces:      len(c.Spaces),
	}
	if s.levels > 0 {
		s.placements = c.Levels[s.levels-1].Len()
	}
	return s
}

// Rollback discards everything added after s was taken.
func (c *Container) Rollback(s Snapshot) {
	c.Levels = c.Levels[:s.levels]
	if s.levels > 0 {
		last := &c.Levels[s.levels-1]
		last.Placements = last.Placements[:s.placements]
	}
	c.StackHeight = s.stackHeight
	c.Spaces = c.Spaces[:s.spaces]
}

// Clear removes all levels and regions.
func (c *Container) Clear() {
	c.Rollback(Snapshot{})
}

// Clone returns a deep copy that shares nothing with c.
func (c *Container) Clone() *Container {
	cp := *c
	cp.Levels = make([]Level, len(c.Levels))
	for i, l := range c.Levels {
		cp.Levels[i] = l.clone()
	}
	cp.Spaces = make([]Space, len(c.Spaces))
	copy(cp.Spaces, c.Spaces)
	return &cp
}

// Validate checks every placement lies inside the container and that no two
// placements overlap.
func (c *Container) Validate() error {
	var all []Placement
	for i, l := range c.Levels {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		all = append(all, l.Placements...)
	}
	for i, p := range all {
		x, y, z := p.Max()
		if p.Space.X < 0 || p.Space.Y < 0 || p.Space.Z < 0 || x > c.Width || y > c.Depth || z > c.Height {
			return fmt.Errorf("%w: %s outside %s", ErrOutOfBounds, p, c.Extent())
		}
		for j := i + 1; j < len(all); j++ {
			if p.Intersects(all[j]) {
				return fmt.Errorf("%w: %s vs %s", ErrOverlap, p, all[j])
			}
		}
	}
	return nil
}
