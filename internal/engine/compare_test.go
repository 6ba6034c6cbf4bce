package engine

import (
	"testing"

	"github.com/piwi3910/StackFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 4)
	assert.Equal(t, base, scenarios[0].Settings)
	assert.Equal(t, "Upright Only", scenarios[1].Name)
	assert.False(t, scenarios[1].Settings.Rotate3D)
	assert.Equal(t, "Linear Container Scan", scenarios[2].Name)
	assert.False(t, scenarios[2].Settings.BinarySearch)
	assert.Equal(t, int64(10000), scenarios[3].Settings.DeadlineMillis)

	base.DeadlineMillis = 0
	base.Rotate3D = false
	scenarios = BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "All Orientations", scenarios[1].Name)
}

func TestCompareScenarios(t *testing.T) {
	items := []model.BoxItem{model.NewBoxItem("pole", 1, 1, 10, 2)}
	containers := []model.Extent{model.NewExtent("flat", 10, 10, 1)}

	scenarios := BuildDefaultScenarios(model.DefaultSettings())
	results := CompareScenarios(scenarios, items, containers)
	require.Len(t, results, len(scenarios))

	assert.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].BoxesPlaced)
	assert.Equal(t, 1, results[0].Levels)
	assert.InDelta(t, 20.0, results[0].FillPercent, 1e-9)

	// upright poles do not fit a flat container
	assert.ErrorIs(t, results[1].Err, ErrNoContainers)
	assert.Equal(t, 0, results[1].BoxesPlaced)
}
