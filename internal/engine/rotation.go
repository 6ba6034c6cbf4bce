package engine

import "github.com/piwi3910/StackFit/internal/model"

// PermutationRotation holds the admissible orientations of one box type and
// how many instances of it are packed.
type PermutationRotation struct {
	Count int
	Boxes []model.Box
}

// ToRotationMatrix lists the distinct orientations of every box type.
//
// With rotate3D a cube has one orientation, a box with a square face three
// and any other box six. Without it a box can only turn its footprint, so
// there are two orientations unless the footprint is square.
func ToRotationMatrix(items []model.BoxItem, rotate3D bool) []PermutationRotation {
	matrix := make([]PermutationRotation, len(items))
	for i, item := range items {
		box0 := item.Box

		variants := []model.Box{box0}
		if rotate3D {
			if !model.IsSquare3D(box0) {
				box1 := box0.Rotate3D()
				box2 := box1.Rotate3D()
				variants = append(variants, box1, box2)

				if !model.IsSquare2D(box0) && !model.IsSquare2D(box1) && !model.IsSquare2D(box2) {
					box3 := box2.Rotate2D3D()
					box4 := box3.Rotate3D()
					box5 := box4.Rotate3D()
					variants = append(variants, box3, box4, box5)
				}
			}
		} else if !model.IsSquare2D(box0) {
			variants = append(variants, box0.Rotate2D())
		}

		matrix[i] = PermutationRotation{Count: item.Count, Boxes: variants}
	}
	return matrix
}
