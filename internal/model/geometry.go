package model

// Dimensioned is implemented by everything with a width (x), depth (y) and
// height (z): boxes, extents, free space regions and containers.
type Dimensioned interface {
	Dims() (width, depth, height int)
}

// CanHold3D reports whether a w x d x h cuboid fits inside outer in any of
// its six axis-aligned orientations.
func CanHold3D(outer Dimensioned, w, d, h int) bool {
	ow, od, oh := outer.Dims()
	return (w <= ow && d <= od && h <= oh) ||
		(h <= ow && w <= od && d <= oh) ||
		(d <= ow && h <= od && w <= oh) ||
		(h <= ow && d <= od && w <= oh) ||
		(d <= ow && w <= od && h <= oh) ||
		(w <= ow && h <= od && d <= oh)
}

// CanHold2D reports whether a w x d x h cuboid fits inside outer standing on
// its w x d face. Height is fixed; the footprint may be turned 90 degrees.
func CanHold2D(outer Dimensioned, w, d, h int) bool {
	ow, od, oh := outer.Dims()
	if h > oh {
		return false
	}
	return (w <= ow && d <= od) || (d <= ow && w <= od)
}

// IsSquare2D reports whether the footprint is square.
func IsSquare2D(x Dimensioned) bool {
	w, d, _ := x.Dims()
	return w == d
}

// IsSquare3D reports whether all three sides are equal.
func IsSquare3D(x Dimensioned) bool {
	w, d, h := x.Dims()
	return w == d && w == h
}

// NonEmpty reports whether all three sides are positive.
func NonEmpty(x Dimensioned) bool {
	w, d, h := x.Dims()
	return w > 0 && d > 0 && h > 0
}

// fitsWithin reports whether inner fits inside outer without rotation.
func fitsWithin(outer Dimensioned, w, d, h int) bool {
	ow, od, oh := outer.Dims()
	return w <= ow && d <= od && h <= oh
}
