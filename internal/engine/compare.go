package engine

import (
	"fmt"

	"github.com/piwi3910/StackFit/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Result      model.PackResult
	Err         error
	BoxesPlaced int
	Levels      int
	FillPercent float64
}

// CompareScenarios packs the same boxes once per scenario and returns the
// results in scenario order. A scenario that fails keeps its error in Err.
func CompareScenarios(scenarios []ComparisonScenario, items []model.BoxItem, containers []model.Extent) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		p := New(scenario.Settings)
		result, err := p.Pack(items, containers)

		cr := ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Err:      err,
		}
		if c := result.Container; c != nil {
			cr.BoxesPlaced = c.BoxCount()
			cr.Levels = len(c.Levels)
			cr.FillPercent = c.FillRatio() * 100
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: the other rotation mode
	altRotate := baseSettings
	altRotate.Rotate3D = !baseSettings.Rotate3D
	name := "Upright Only"
	if altRotate.Rotate3D {
		name = "All Orientations"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: altRotate,
	})

	// Scenario: the other container selection
	altSearch := baseSettings
	altSearch.BinarySearch = !baseSettings.BinarySearch
	name = "Linear Container Scan"
	if altSearch.BinarySearch {
		name = "Binary Container Search"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: altSearch,
	})

	// Scenario: double the time budget
	if baseSettings.DeadlineMillis > 0 {
		longer := baseSettings
		longer.DeadlineMillis = baseSettings.DeadlineMillis * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Deadline %dms", longer.DeadlineMillis),
			Settings: longer,
		})
	}

	return scenarios
}
