package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/piwi3910/StackFit/internal/model"
)

// AcceptFunc decides whether a completely packed container is good enough.
// Returning false makes the search continue with the next arrangement.
type AcceptFunc func(c *model.Container) bool

// BruteForcePackager tries every ordering and orientation of the boxes until
// one stacks into the container.
//
// Boxes are laid out in levels. Each level is as tall as its first box and
// spans the full footprint; the boxes that follow are placed next to each
// other by splitting the leftover footprint, until one does not fit and a new
// level is opened on top.
type BruteForcePackager struct {
	Accept   AcceptFunc   // nil accepts every complete arrangement
	Validate bool         // check the result for overlaps before accepting it
	Logger   *slog.Logger // nil uses slog.Default()
}

// Search runs until a fit is found, every arrangement has been tried or the
// deadline passes. A zero deadline means no time limit.
//
// It returns a copy of the packed container, or nil when no arrangement fits
// or the deadline passed first. c is left as it was.
func (p *BruteForcePackager) Search(c *model.Container, it *PermutationRotationIterator, deadline time.Time) (*model.Container, error) {
	ctx := context.Background()
	if !deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}
	return p.SearchContext(ctx, c, it)
}

// SearchContext is Search bounded by ctx instead of a deadline.
func (p *BruteForcePackager) SearchContext(ctx context.Context, c *model.Container, it *PermutationRotationIterator) (*model.Container, error) {
	found, _, err := p.search(ctx, c, it)
	return found, err
}

func (p *BruteForcePackager) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// search also returns the number of arrangements tried.
func (p *BruteForcePackager) search(ctx context.Context, c *model.Container, it *PermutationRotationIterator) (*model.Container, int, error) {
	log := p.logger().With("container", c.Extent().String())
	log.Debug("search started",
		"boxes", it.Len(),
		"permutations", it.CountPermutations(),
		"rotations", it.CountRotations())

	s := &levelStacker{container: c, it: it, done: ctx.Done()}
	start := c.Snapshot()
	defer c.Rollback(start)

	attempts := 0
	for {
		for {
			if s.expired() {
				log.Debug("search deadline reached", "attempts", attempts)
				return nil, attempts, nil
			}
			attempts++

			packed, err := s.stack()
			if err != nil {
				return nil, attempts, err
			}
			if packed {
				if p.Validate {
					if err := c.Validate(); err != nil {
						return nil, attempts, fmt.Errorf("arrangement %v/%v: %w", it.Permutation(), it.Rotations(), err)
					}
				}
				if p.Accept == nil || p.Accept(c.Clone()) {
					log.Debug("search found fit", "attempts", attempts, "levels", len(c.Levels))
					return c.Clone(), attempts, nil
				}
			}
			c.Rollback(start)

			if !it.NextRotation() {
				break
			}
		}
		if !it.NextPermutation() {
			break
		}
	}

	log.Debug("search exhausted", "attempts", attempts)
	return nil, attempts, nil
}

// levelStacker places the boxes of one arrangement into a container.
type levelStacker struct {
	container *model.Container
	it        *PermutationRotationIterator
	done      <-chan struct{}
}

func (s *levelStacker) expired() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// stack lays out the current arrangement level by level. It returns false
// when the remaining boxes are too tall for the space left or when the
// deadline passes part way.
func (s *levelStacker) stack() (bool, error) {
	c, it := s.container, s.it

	index := 0
	for index < it.Len() {
		if s.expired() {
			return false, nil
		}

		c.AddLevel()
		free, err := c.FreeSpace()
		if err != nil {
			return false, err
		}
		if !it.IsWithinHeight(index, free.Height) {
			return false, nil
		}

		level := c.AddSpace(model.NewSpace(c.Width, c.Depth, free.Height, 0, 0, c.StackHeight))
		first := it.Get(index)
		index++

		index, err = s.fit2D(index, model.Placement{Box: first, Space: level})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// fit2D adds used to the open level and keeps filling the leftover footprint
// with the following boxes. It returns the index of the first box not placed.
func (s *levelStacker) fit2D(index int, used model.Placement) (int, error) {
	c, it := s.container, s.it

	if err := c.Add(used); err != nil {
		return index, err
	}
	if index >= it.Len() || s.expired() {
		return index, nil
	}

	next := it.Get(index)
	offered, remainder, ok := used.Space.Split(used.Box, next)
	if !ok {
		return index, nil
	}
	offered, remainder = c.AddSplit(offered, remainder)
	nextPlacement := model.Placement{Box: next, Space: offered}
	index++

	// the remainder may take the box after next
	if index < it.Len() && model.NonEmpty(remainder) && remainder.Fits(it.Get(index)) {
		sub := remainder
		sub.Parent = remainder.ID
		sub.Remainder = model.NoSpace
		sub = c.AddSpace(sub)

		box := it.Get(index)
		index++

		var err error
		if index, err = s.fit2D(index, model.Placement{Box: box, Space: sub}); err != nil {
			return index, err
		}
	}

	return s.fit2D(index, nextPlacement)
}
