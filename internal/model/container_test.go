package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(c *Container, b Box, x, y int) Placement {
	s := c.AddSpace(NewSpace(c.Width-x, c.Depth-y, c.Height-c.StackHeight, x, y, c.StackHeight))
	return Placement{Box: b, Space: s}
}

func TestContainer_LevelsAndStackHeight(t *testing.T) {
	c := NewContainer(NewExtent("crate", 10, 10, 10))

	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 5, 5, 3), 0, 0)))
	require.NoError(t, c.Add(place(c, NewBox("b", 5, 5, 4), 5, 0)))
	assert.Equal(t, 0, c.StackHeight, "open level is not stacked")
	assert.Equal(t, 4, c.Levels[0].Height())

	free, err := c.FreeSpace()
	require.NoError(t, err)
	assert.Equal(t, 10, free.Height)

	c.AddLevel()
	assert.Equal(t, 4, c.StackHeight)
	require.NoError(t, c.Add(place(c, NewBox("c", 10, 10, 6), 0, 0)))

	free, err = c.FreeSpace()
	require.NoError(t, err)
	assert.Equal(t, Extent{Width: 10, Depth: 10, Height: 6}, free)

	assert.Equal(t, 3, c.BoxCount())
	assert.Equal(t, "c", c.Get(1, 0).Box.Name)
	assert.Equal(t, 4, c.Get(1, 0).Space.Z)
	assert.Equal(t, Extent{Width: 10, Depth: 10, Height: 10}, c.UsedSpace())
	assert.NoError(t, c.Validate())
}

func TestContainer_AddBeyondHeight(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 5))

	err := c.Add(Placement{Box: NewBox("a", 1, 1, 1)})
	assert.Error(t, err, "no open level")

	c.AddLevel()
	err = c.Add(place(c, NewBox("tall", 1, 1, 6), 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeFreeSpace))
}

func TestContainer_FreeSpaceNegative(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 5))
	c.StackHeight = 6

	_, err := c.FreeSpace()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNegativeFreeSpace))
}

func TestContainer_SnapshotRollback(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 5, 5, 5), 0, 0)))

	snap := c.Snapshot()

	require.NoError(t, c.Add(place(c, NewBox("b", 5, 5, 5), 5, 0)))
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("c", 5, 5, 5), 0, 0)))
	assert.Equal(t, 3, c.BoxCount())
	assert.Equal(t, 5, c.StackHeight)

	c.Rollback(snap)
	assert.Equal(t, 1, c.BoxCount())
	assert.Len(t, c.Levels, 1)
	assert.Equal(t, 0, c.StackHeight)
	assert.Len(t, c.Spaces, 1)

	c.Clear()
	assert.Equal(t, 0, c.BoxCount())
	assert.Empty(t, c.Levels)
	assert.Empty(t, c.Spaces)
}

func TestContainer_CloneIsIndependent(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 5, 5, 5), 0, 0)))

	cp := c.Clone()
	c.Clear()
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("z", 1, 1, 1), 0, 0)))

	require.Equal(t, 1, cp.BoxCount())
	assert.Equal(t, "a", cp.Get(0, 0).Box.Name)
	assert.Len(t, cp.Spaces, 1)
}

func TestContainer_AddSplitLinks(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	root := c.AddSpace(NewSpace(10, 10, 10, 0, 0, 0))

	offered, remainder, ok := root.Split(NewBox("u", 4, 8, 10), NewBox("n", 1, 1, 1))
	require.True(t, ok)
	offered, remainder = c.AddSplit(offered, remainder)

	assert.Equal(t, root.ID, offered.Parent)
	assert.Equal(t, root.ID, remainder.Parent)
	assert.Equal(t, remainder.ID, offered.Remainder)
	assert.True(t, remainder.Terminal())

	got, ok := c.Space(offered.ID)
	require.True(t, ok)
	assert.Equal(t, offered, got)
	_, ok = c.Space(NoSpace)
	assert.False(t, ok)
}

func TestContainer_ValidateDetectsOverlap(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 5, 5, 5), 0, 0)))
	require.NoError(t, c.Add(place(c, NewBox("b", 5, 5, 5), 4, 4)))

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlap))
}

func TestContainer_ValidateDetectsOutOfBounds(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 5, 5, 5), 6, 0)))

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestPlacement_Intersects(t *testing.T) {
	a := Placement{Box: NewBox("a", 2, 2, 2), Space: NewSpace(2, 2, 2, 0, 0, 0)}
	b := Placement{Box: NewBox("b", 2, 2, 2), Space: NewSpace(2, 2, 2, 2, 0, 0)}
	c := Placement{Box: NewBox("c", 2, 2, 2), Space: NewSpace(2, 2, 2, 1, 1, 1)}

	assert.True(t, a.Intersects(a))
	assert.False(t, a.Intersects(b), "touching faces do not overlap")
	assert.True(t, a.Intersects(c))
	assert.True(t, c.Intersects(b))
}

func TestContainer_FillRatio(t *testing.T) {
	c := NewContainer(NewExtent("", 10, 10, 10))
	assert.Equal(t, 0.0, c.FillRatio())

	c.AddLevel()
	require.NoError(t, c.Add(place(c, NewBox("a", 10, 10, 5), 0, 0)))
	assert.InDelta(t, 0.5, c.FillRatio(), 1e-9)
	assert.Equal(t, int64(500), c.UsedVolume())
}
