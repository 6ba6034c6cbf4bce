package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtent(t *testing.T) {
	e, err := ParseExtent("1200x800x1500")
	require.NoError(t, err)
	assert.Equal(t, Extent{Width: 1200, Depth: 800, Height: 1500}, e)
	assert.Equal(t, int64(1200*800*1500), e.Volume())
	assert.Equal(t, "1200x800x1500", e.Encode())

	e, err = ParseExtent("0x1x2")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Width)
}

func TestParseExtent_Malformed(t *testing.T) {
	bad := []string{
		"",
		"10x10",
		"10x10x10x10",
		"10xx10",
		"ax10x10",
		"-1x10x10",
		"+1x10x10",
		"1.5x10x10",
		"10X10X10",
		"10x10x",
		"99999999999999999999x1x1",
		" 1x2x3",
		"1x2x3\n",
		"1 x2x3",
	}
	for _, s := range bad {
		_, err := ParseExtent(s)
		if assert.Error(t, err, "input %q", s) {
			assert.True(t, errors.Is(err, ErrInvalidExtent), "input %q", s)
		}
	}
}

func TestExtent_EncodeRoundTrip(t *testing.T) {
	e := NewExtent("pallet", 3, 4, 5)
	decoded, err := ParseExtent(e.Encode())
	require.NoError(t, err)

	// The text form does not carry the name.
	assert.NotEqual(t, e, decoded)
	decoded.Name = e.Name
	assert.Equal(t, e, decoded)
	assert.Equal(t, "pallet (3x4x5)", e.String())
	assert.Equal(t, "3x4x5", decoded.Encode())
}

func TestExtent_Equality(t *testing.T) {
	assert.Equal(t, NewExtent("a", 1, 2, 3), NewExtent("a", 1, 2, 3))
	assert.NotEqual(t, NewExtent("a", 1, 2, 3), NewExtent("b", 1, 2, 3))
	assert.NotEqual(t, NewExtent("a", 1, 2, 3), NewExtent("a", 2, 1, 3))
}
