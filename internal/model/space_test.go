package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_SplitPrefersLargerArea(t *testing.T) {
	free := NewSpace(10, 10, 5, 0, 0, 0)
	free.ID = 3
	used := NewBox("u", 4, 8, 5)
	next := NewBox("n", 2, 2, 5)

	// B = 6x10 = 60, A = 10x2 = 20
	offered, remainder, ok := free.Split(used, next)
	require.True(t, ok)
	assert.Equal(t, Space{ID: NoSpace, Width: 6, Depth: 10, Height: 5, X: 4, Y: 0, Z: 0, Parent: 3, Remainder: NoSpace}, offered)
	assert.Equal(t, Space{ID: NoSpace, Width: 4, Depth: 2, Height: 5, X: 0, Y: 8, Z: 0, Parent: 3, Remainder: NoSpace}, remainder)

	// A = 10x6 = 60, B = 2x10 = 20
	used = NewBox("u", 8, 4, 5)
	offered, remainder, ok = free.Split(used, next)
	require.True(t, ok)
	assert.Equal(t, 10, offered.Width)
	assert.Equal(t, 6, offered.Depth)
	assert.Equal(t, 4, offered.Y)
	assert.Equal(t, 2, remainder.Width)
	assert.Equal(t, 4, remainder.Depth)
	assert.Equal(t, 8, remainder.X)
}

func TestSpace_SplitTieGoesToB(t *testing.T) {
	free := NewSpace(10, 10, 5, 0, 0, 0)
	used := NewBox("u", 5, 5, 5)
	next := NewBox("n", 1, 1, 1)

	offered, _, ok := free.Split(used, next)
	require.True(t, ok)
	assert.Equal(t, 5, offered.X, "B lies past the used width")
	assert.Equal(t, 0, offered.Y)
	assert.Equal(t, 10, offered.Depth)
}

func TestSpace_SplitFallsBackToSmaller(t *testing.T) {
	free := NewSpace(10, 10, 5, 0, 0, 0)
	used := NewBox("u", 4, 8, 5)
	// B (6x10) cannot take a 7-wide box, A (10x2) can.
	next := NewBox("n", 7, 2, 1)

	offered, remainder, ok := free.Split(used, next)
	require.True(t, ok)
	assert.Equal(t, 10, offered.Width)
	assert.Equal(t, 2, offered.Depth)
	assert.Equal(t, 8, offered.Y)
	assert.Equal(t, 6, remainder.Width)
	assert.Equal(t, 8, remainder.Depth)
	assert.Equal(t, 4, remainder.X)
}

func TestSpace_SplitNoFit(t *testing.T) {
	free := NewSpace(10, 10, 5, 0, 0, 0)

	_, _, ok := free.Split(NewBox("u", 10, 10, 5), NewBox("n", 1, 1, 1))
	assert.False(t, ok, "nothing left over")

	_, _, ok = free.Split(NewBox("u", 5, 5, 5), NewBox("n", 1, 1, 6))
	assert.False(t, ok, "next box too tall")

	_, _, ok = free.Split(NewBox("u", 11, 5, 5), NewBox("n", 1, 1, 1))
	assert.False(t, ok, "used box does not fit")
}

func TestSpace_SplitKeepsLevelOrigin(t *testing.T) {
	free := NewSpace(10, 10, 5, 2, 3, 7)
	used := NewBox("u", 8, 4, 5)

	offered, remainder, ok := free.Split(used, NewBox("n", 1, 1, 1))
	require.True(t, ok)
	assert.Equal(t, 7, offered.Z)
	assert.Equal(t, 7, remainder.Z)
	assert.Equal(t, 5, offered.Height)
	assert.Equal(t, 5, remainder.Height)
}

func TestSpace_SplitTilesFootprint(t *testing.T) {
	next := NewBox("n", 1, 1, 1)
	for fw := 1; fw <= 6; fw++ {
		for fd := 1; fd <= 6; fd++ {
			for uw := 1; uw <= fw; uw++ {
				for ud := 1; ud <= fd; ud++ {
					free := NewSpace(fw, fd, 3, 1, 2, 0)
					used := NewBox("u", uw, ud, 3)
					offered, remainder, ok := free.Split(used, next)
					if !ok {
						assert.True(t, uw == fw && ud == fd, "only a full cover leaves nothing for a unit box")
						continue
					}
					assert.Equal(t, free.Area(), offered.Area()+remainder.Area()+used.Footprint(),
						"free %dx%d used %dx%d", fw, fd, uw, ud)
					assertTiles(t, free, used, offered, remainder)
				}
			}
		}
	}
}

// assertTiles checks that used, offered and remainder cover every cell of
// the free footprint exactly once.
func assertTiles(t *testing.T, free Space, used Box, offered, remainder Space) {
	t.Helper()
	cover := func(x, y int) int {
		n := 0
		if x >= free.X && x < free.X+used.Width && y >= free.Y && y < free.Y+used.Depth {
			n++
		}
		for _, s := range []Space{offered, remainder} {
			if x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Depth {
				n++
			}
		}
		return n
	}
	for x := free.X; x < free.X+free.Width; x++ {
		for y := free.Y; y < free.Y+free.Depth; y++ {
			assert.Equal(t, 1, cover(x, y), "cell %d,%d", x, y)
		}
	}
}

func TestSpace_Fits(t *testing.T) {
	s := NewSpace(4, 3, 2, 0, 0, 0)
	assert.True(t, s.Fits(NewBox("", 4, 3, 2)))
	assert.False(t, s.Fits(NewBox("", 3, 4, 2)), "no rotation")
	assert.True(t, s.Terminal())
}
