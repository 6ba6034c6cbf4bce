package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Box is an immutable cuboid. Rotating a box returns a new value; volume and
// footprint are always derived from the current orientation.
type Box struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`  // x
	Depth  int    `json:"depth"`  // y
	Height int    `json:"height"` // z
}

func NewBox(name string, w, d, h int) Box {
	return Box{Name: name, Width: w, Depth: d, Height: h}
}

func (b Box) Dims() (int, int, int) {
	return b.Width, b.Depth, b.Height
}

// Volume returns width * depth * height.
func (b Box) Volume() int64 {
	return int64(b.Width) * int64(b.Depth) * int64(b.Height)
}

// Footprint returns width * depth.
func (b Box) Footprint() int64 {
	return int64(b.Width) * int64(b.Depth)
}

// Extent returns the box size as a named extent.
func (b Box) Extent() Extent {
	return Extent{Name: b.Name, Width: b.Width, Depth: b.Depth, Height: b.Height}
}

func (b Box) String() string {
	return fmt.Sprintf("Box[%s %s]", b.Name, EncodeExtent(b.Width, b.Depth, b.Height))
}

// Rotate2D turns the box 90 degrees around the vertical axis.
func (b Box) Rotate2D() Box {
	return Box{Name: b.Name, Width: b.Depth, Depth: b.Width, Height: b.Height}
}

// Rotate3D cycles the axes: the old width becomes the height, the old depth
// becomes the width and the old height becomes the depth. Three applications
// return the original orientation.
func (b Box) Rotate3D() Box {
	return Box{Name: b.Name, Width: b.Depth, Depth: b.Height, Height: b.Width}
}

// Rotate2D3D swaps depth and height, keeping the width. Combined with
// Rotate3D it reaches the three orientations Rotate3D alone cannot.
func (b Box) Rotate2D3D() Box {
	return Box{Name: b.Name, Width: b.Width, Depth: b.Height, Height: b.Depth}
}

// FitRotate2D returns the box, or its 2D rotation, whichever first fits a
// w x d footprint. ok is false when neither fits.
func (b Box) FitRotate2D(w, d int) (Box, bool) {
	if w >= b.Width && d >= b.Depth {
		return b, true
	}
	if d >= b.Width && w >= b.Depth {
		return b.Rotate2D(), true
	}
	return Box{}, false
}

// FitRotate3DSmallestFootprint picks the orientation with the smallest
// footprint that fits within w x d x h. Ties go to the later candidate in
// the order height-up, width-up, depth-up.
//
// ErrNoFit is returned when no face can be turned up. ErrOrientationContract
// is returned if the selected orientation unexpectedly does not fit.
func (b Box) FitRotate3DSmallestFootprint(w, d, h int) (Box, error) {
	const none = int64(math.MaxInt64)

	heightUp := none
	if b.heightUp(w, d, h) {
		heightUp = int64(b.Width) * int64(b.Depth)
	}
	widthUp := none
	if b.widthUp(w, d, h) {
		widthUp = int64(b.Height) * int64(b.Depth)
	}
	depthUp := none
	if b.depthUp(w, d, h) {
		depthUp = int64(b.Width) * int64(b.Height)
	}

	if heightUp == none && widthUp == none && depthUp == none {
		return Box{}, fmt.Errorf("%w: %s in %s", ErrNoFit, b, EncodeExtent(w, d, h))
	}

	var chosen Box
	switch {
	case heightUp < widthUp && heightUp < depthUp:
		chosen = b
	case widthUp < depthUp:
		chosen = b.Rotate3D()
	default:
		chosen = b.Rotate3D().Rotate3D()
	}

	if chosen.Height > h {
		return Box{}, fmt.Errorf("%w: height %d exceeds %d", ErrOrientationContract, chosen.Height, h)
	}
	if chosen.Width > w || chosen.Depth > d {
		chosen = chosen.Rotate2D()
	}
	if chosen.Width > w || chosen.Depth > d {
		return Box{}, fmt.Errorf("%w: footprint %dx%d exceeds %dx%d",
			ErrOrientationContract, chosen.Width, chosen.Depth, w, d)
	}
	return chosen, nil
}

func (b Box) heightUp(w, d, h int) bool {
	if h < b.Height {
		return false
	}
	return (d >= b.Width && w >= b.Depth) || (w >= b.Width && d >= b.Depth)
}

func (b Box) widthUp(w, d, h int) bool {
	if h < b.Width {
		return false
	}
	return (d >= b.Height && w >= b.Depth) || (w >= b.Height && d >= b.Depth)
}

func (b Box) depthUp(w, d, h int) bool {
	if h < b.Depth {
		return false
	}
	return (d >= b.Height && w >= b.Width) || (w >= b.Height && d >= b.Width)
}

// BoxItem is a box type together with how many instances must be packed.
type BoxItem struct {
	ID    string `json:"id"`
	Box   Box    `json:"box"`
	Count int    `json:"count"`
}

func NewBoxItem(name string, w, d, h, count int) BoxItem {
	return BoxItem{
		ID:    uuid.New().String()[:8],
		Box:   NewBox(name, w, d, h),
		Count: count,
	}
}

// TotalBoxes returns the number of box instances across all items.
func TotalBoxes(items []BoxItem) int {
	n := 0
	for _, it := range items {
		n += it.Count
	}
	return n
}

// TotalVolume returns the summed volume of every box instance.
func TotalVolume(items []BoxItem) int64 {
	var v int64
	for _, it := range items {
		v += it.Box.Volume() * int64(it.Count)
	}
	return v
}
