package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/piwi3910/StackFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() model.Settings {
	s := model.DefaultSettings()
	s.ValidateLevels = true
	return s
}

func testContainers() []model.Extent {
	return []model.Extent{
		model.NewExtent("xl", 20, 20, 20),
		model.NewExtent("s", 10, 10, 10),
		model.NewExtent("xs", 10, 10, 5),
		model.NewExtent("m", 15, 15, 15),
	}
}

func TestPack_SelectsSmallestContainer(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("slab", 10, 10, 5, 2)}

	for _, binary := range []bool{true, false} {
		s := testSettings()
		s.BinarySearch = binary

		result, err := New(s).Pack(items, testContainers())
		require.NoError(t, err)
		require.True(t, result.Packed())

		assert.Equal(t, "s", result.Container.Name, "binary=%v", binary)
		assert.Equal(t, 2, result.Container.BoxCount())
		assert.False(t, result.DeadlineReached)
		assert.Equal(t, []string{"s", "m", "xl"}, names(result.Candidates), "xs is too small by volume")
	}
}

func TestPack_AttemptsPerMode(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("slab", 10, 10, 5, 2)}

	s := testSettings()
	s.BinarySearch = false
	result, err := New(s).Pack(items, testContainers())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempts)

	s.BinarySearch = true
	result, err = New(s).Pack(items, testContainers())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempts, "m then s")
}

func TestPack_NoContainers(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("huge", 30, 30, 30, 1)}

	result, err := New(testSettings()).Pack(items, testContainers())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContainers))
	assert.False(t, result.Packed())
}

func TestPack_UprightOnlyFiltersCandidates(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("pole", 1, 1, 10, 1)}
	containers := []model.Extent{model.NewExtent("flat", 10, 10, 1)}

	result, err := New(testSettings()).Pack(items, containers)
	require.NoError(t, err)
	require.True(t, result.Packed())
	assert.Equal(t, 1, result.Container.Get(0, 0).Box.Height)

	s := testSettings()
	s.Rotate3D = false
	_, err = New(s).Pack(items, containers)
	assert.True(t, errors.Is(err, ErrNoContainers))
}

func TestPack_NothingFits(t *testing.T) {
	// Enough volume, but three 6-cubes never share a 10x10x10 crate.
	items := []model.BoxItem{model.NewBoxItem("cube", 6, 6, 6, 3)}
	containers := []model.Extent{model.NewExtent("crate", 10, 10, 10)}

	result, err := New(testSettings()).Pack(items, containers)
	require.NoError(t, err)
	assert.False(t, result.Packed())
	assert.False(t, result.DeadlineReached)
	assert.Equal(t, 1, result.Attempts)
}

func TestPackContext_Canceled(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("cube", 1, 1, 1, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(testSettings()).PackContext(ctx, items, testContainers())
	require.NoError(t, err)
	assert.False(t, result.Packed())
	assert.True(t, result.DeadlineReached)
}

func TestPack_SkipsEmptyItemsAndRejectsInvalid(t *testing.T) {
	items := []model.BoxItem{
		model.NewBoxItem("none", 100, 100, 100, 0),
		model.NewBoxItem("cube", 5, 5, 5, 1),
	}
	result, err := New(testSettings()).Pack(items, testContainers())
	require.NoError(t, err)
	require.True(t, result.Packed())
	assert.Equal(t, 1, result.Container.BoxCount())

	items = append(items, model.NewBoxItem("flat", 5, 0, 5, 1))
	_, err = New(testSettings()).Pack(items, testContainers())
	assert.True(t, errors.Is(err, model.ErrInvalidExtent))
}

func names(extents []model.Extent) []string {
	out := make([]string, len(extents))
	for i, e := range extents {
		out[i] = e.Name
	}
	return out
}
