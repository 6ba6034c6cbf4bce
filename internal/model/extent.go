package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidExtent is returned when an extent string is not of the form "WxDxH".
	ErrInvalidExtent = errors.New("invalid extent")

	// ErrNoFit is returned when no orientation of a box fits a bound.
	ErrNoFit = errors.New("box does not fit")

	// ErrOrientationContract signals that an orientation chosen after the fit
	// precheck still does not fit. Callers only ask for orientations they
	// know to exist, so this is a logic error upstream.
	ErrOrientationContract = errors.New("orientation contract violated")

	// ErrNegativeFreeSpace signals that the stacked levels exceed the container height.
	ErrNegativeFreeSpace = errors.New("remaining free space is negative")

	// ErrOverlap is returned by level validation when two placements share volume.
	ErrOverlap = errors.New("placements overlap")

	// ErrOutOfBounds is returned by container validation when a box sticks out.
	ErrOutOfBounds = errors.New("placement outside container")
)

// Extent is an immutable named size. It is used for container bounds and
// for reporting free and used space.
type Extent struct {
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width"`  // x
	Depth  int    `json:"depth"`  // y
	Height int    `json:"height"` // z
}

func NewExtent(name string, w, d, h int) Extent {
	return Extent{Name: name, Width: w, Depth: d, Height: h}
}

// EmptyExtent is the zero-sized extent.
var EmptyExtent = Extent{}

func (e Extent) Dims() (int, int, int) {
	return e.Width, e.Depth, e.Height
}

// Volume returns width * depth * height.
func (e Extent) Volume() int64 {
	return int64(e.Width) * int64(e.Depth) * int64(e.Height)
}

// Encode returns the "WxDxH" form of the extent. The name is not included.
func (e Extent) Encode() string {
	return EncodeExtent(e.Width, e.Depth, e.Height)
}

func (e Extent) String() string {
	if e.Name == "" {
		return e.Encode()
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Encode())
}

// EncodeExtent formats a size as "WxDxH".
func EncodeExtent(w, d, h int) string {
	return strconv.Itoa(w) + "x" + strconv.Itoa(d) + "x" + strconv.Itoa(h)
}

// ParseExtent decodes a "WxDxH" string. Each part must be a non-negative
// base-10 integer and there must be exactly two 'x' separators. Surrounding
// whitespace is rejected; callers reading user input trim it first.
func ParseExtent(s string) (Extent, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 3 {
		return Extent{}, fmt.Errorf("%w: %q: expected WxDxH", ErrInvalidExtent, s)
	}
	var dims [3]int
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Extent{}, fmt.Errorf("%w: %q: %q is not a non-negative integer", ErrInvalidExtent, s, p)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return Extent{}, fmt.Errorf("%w: %q: %v", ErrInvalidExtent, s, err)
		}
		dims[i] = v
	}
	return Extent{Width: dims[0], Depth: dims[1], Height: dims[2]}, nil
}
