package model

import "time"

// Settings holds packer configuration for one job.
type Settings struct {
	Rotate3D       bool  `json:"rotate_3d"`       // Allow all six orientations; otherwise only footprint turns
	BinarySearch   bool  `json:"binary_search"`   // Bisect over candidate containers instead of scanning
	DeadlineMillis int64 `json:"deadline_ms"`     // Total time budget for one Pack call, 0 for none
	ValidateLevels bool  `json:"validate_levels"` // Overlap-check every accepted container
}

func DefaultSettings() Settings {
	return Settings{
		Rotate3D:       true,
		BinarySearch:   true,
		DeadlineMillis: 5000,
		ValidateLevels: false,
	}
}

// Timeout returns the time budget as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.DeadlineMillis) * time.Millisecond
}

// PackResult is the outcome of packing a box list into one of several
// candidate containers.
type PackResult struct {
	Container *Container `json:"container,omitempty"` // nil when nothing fitted

	// Candidates lists the containers that passed the volume and size
	// prefilter, smallest first.
	Candidates []Extent `json:"candidates"`

	// Attempts is the number of containers searched.
	Attempts int `json:"attempts"`

	// DeadlineReached is set when the time budget ran out. A nil Container
	// with DeadlineReached false means every candidate was searched
	// exhaustively without a fit.
	DeadlineReached bool          `json:"deadline_reached"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Packed reports whether a container was found.
func (r PackResult) Packed() bool {
	return r.Container != nil
}
