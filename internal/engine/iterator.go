package engine

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/piwi3910/StackFit/internal/model"
)

// ErrBoxDoesNotFit is returned when a box type has no orientation that fits
// the container bound.
var ErrBoxDoesNotFit = errors.New("box does not fit container")

// CountOverflow is returned by the counting functions when the result does
// not fit in an int64.
const CountOverflow int64 = -1

// PermutationRotationIterator walks every distinct ordering of the box
// instances and, for each ordering, every combination of orientations.
//
// Instances are represented by their type index. The ordering starts sorted
// ascending and advances to the next lexicographic permutation, so identical
// boxes are never swapped with each other. Orientations advance like an
// odometer with slot 0 as the least significant digit.
//
// Usage:
//
//	for {
//		for {
//			for i := 0; i < it.Len(); i++ {
//				box := it.Get(i)
//				// ...
//			}
//			if !it.NextRotation() {
//				break
//			}
//		}
//		if !it.NextPermutation() {
//			break
//		}
//	}
//
// An iterator is not safe for concurrent use.
type PermutationRotationIterator struct {
	matrix       []PermutationRotation
	permutations []int // type index per slot
	rotations    []int // orientation index per slot
}

// NewIterator builds the rotation matrix for items and an iterator bounded
// by the container size.
func NewIterator(items []model.BoxItem, bound model.Dimensioned, rotate3D bool) (*PermutationRotationIterator, error) {
	return NewPermutationRotationIterator(bound, ToRotationMatrix(items, rotate3D))
}

// NewPermutationRotationIterator drops orientations that exceed bound. Every
// box type must keep at least one orientation.
func NewPermutationRotationIterator(bound model.Dimensioned, unconstrained []PermutationRotation) (*PermutationRotationIterator, error) {
	bw, bd, bh := bound.Dims()

	matrix := make([]PermutationRotation, len(unconstrained))
	var types []int
	for i, pr := range unconstrained {
		var fitting []model.Box
		for _, b := range pr.Boxes {
			if b.Width <= bw && b.Depth <= bd && b.Height <= bh {
				fitting = append(fitting, b)
			}
		}
		if len(fitting) == 0 {
			name := ""
			if len(pr.Boxes) > 0 {
				name = pr.Boxes[0].String()
			}
			return nil, fmt.Errorf("%w: type %d %s in %s", ErrBoxDoesNotFit, i, name, model.EncodeExtent(bw, bd, bh))
		}
		matrix[i] = PermutationRotation{Count: pr.Count, Boxes: fitting}

		for k := 0; k < pr.Count; k++ {
			types = append(types, i)
		}
	}

	return &PermutationRotationIterator{
		matrix:       matrix,
		permutations: types,
		rotations:    make([]int, len(types)),
	}, nil
}

// Len returns the number of box instances.
func (it *PermutationRotationIterator) Len() int {
	return len(it.permutations)
}

// Get returns the box at slot index in its current orientation.
func (it *PermutationRotationIterator) Get(index int) model.Box {
	return it.matrix[it.permutations[index]].Boxes[it.rotations[index]]
}

// Permutation returns a copy of the current type order.
func (it *PermutationRotationIterator) Permutation() []int {
	return append([]int(nil), it.permutations...)
}

// Rotations returns a copy of the current orientation indexes.
func (it *PermutationRotationIterator) Rotations() []int {
	return append([]int(nil), it.rotations...)
}

// Matrix returns the orientations admitted for each box type.
func (it *PermutationRotationIterator) Matrix() []PermutationRotation {
	return it.matrix
}

// NextRotation advances to the next orientation combination. It returns
// false once every combination for the current ordering has been visited.
func (it *PermutationRotationIterator) NextRotation() bool {
	for i := range it.rotations {
		if it.rotations[i] < len(it.matrix[it.permutations[i]].Boxes)-1 {
			it.rotations[i]++
			clear(it.rotations[:i])
			return true
		}
	}
	return false
}

// ResetRotations puts every slot back to its first orientation.
func (it *PermutationRotationIterator) ResetRotations() {
	clear(it.rotations)
}

// NextPermutation resets the orientations and advances to the next
// lexicographic ordering. It returns false at the last ordering.
//
// See https://www.nayuki.io/page/next-lexicographical-permutation-algorithm
func (it *PermutationRotationIterator) NextPermutation() bool {
	it.ResetRotations()

	p := it.permutations

	// longest non-increasing suffix
	i := len(p) - 1
	for i > 0 && p[i-1] >= p[i] {
		i--
	}
	if i <= 0 {
		return false
	}

	// rightmost element exceeding the pivot
	j := len(p) - 1
	for p[j] <= p[i-1] {
		j--
	}
	p[i-1], p[j] = p[j], p[i-1]

	for j = len(p) - 1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return true
}

// IsWithinHeight reports whether every box from fromIndex onwards, in its
// current orientation, is at most height tall.
func (it *PermutationRotationIterator) IsWithinHeight(fromIndex, height int) bool {
	for i := fromIndex; i < len(it.permutations); i++ {
		if it.Get(i).Height > height {
			return false
		}
	}
	return true
}

// CountRotations returns the number of orientation combinations per
// ordering, or CountOverflow.
func (it *PermutationRotationIterator) CountRotations() int64 {
	n := int64(1)
	for _, t := range it.permutations {
		k := int64(len(it.matrix[t].Boxes))
		if n > math.MaxInt64/k {
			return CountOverflow
		}
		n *= k
	}
	return n
}

// CountPermutations returns the number of distinct orderings, n! divided by
// the factorial of each type's count, or CountOverflow.
func (it *PermutationRotationIterator) CountPermutations() int64 {
	n := uint64(1)
	total := uint64(0)
	for _, pr := range it.matrix {
		// multiply in C(total+count, count) one factor at a time; every
		// intermediate quotient is exact
		for k := uint64(1); k <= uint64(pr.Count); k++ {
			total++
			hi, lo := bits.Mul64(n, total)
			if hi >= k {
				return CountOverflow
			}
			q, _ := bits.Div64(hi, lo, k)
			if q > math.MaxInt64 {
				return CountOverflow
			}
			n = q
		}
	}
	return int64(n)
}
