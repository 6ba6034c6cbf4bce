package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinarySearchIterator_FindsLowestMatch(t *testing.T) {
	for target := 0; target <= 10; target++ {
		bs := NewBinarySearchIterator(0, 9)
		best := -1
		steps := 0
		for bs.HasNext() {
			steps++
			if bs.Mid >= target {
				best = bs.Mid
				bs.Lower()
			} else {
				bs.Higher()
			}
		}
		if target > 9 {
			assert.Equal(t, -1, best)
		} else {
			assert.Equal(t, target, best)
		}
		assert.LessOrEqual(t, steps, 4)
	}
}

func TestBinarySearchIterator_Cursor(t *testing.T) {
	bs := NewBinarySearchIterator(0, 9)
	assert.Equal(t, 4, bs.Mid)

	bs.Lower()
	assert.Equal(t, BinarySearchIterator{Low: 0, High: 3, Mid: 1}, *bs)

	bs.Higher()
	assert.Equal(t, BinarySearchIterator{Low: 2, High: 3, Mid: 2}, *bs)

	empty := NewBinarySearchIterator(0, -1)
	assert.False(t, empty.HasNext())
}
