package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packer settings applied to new jobs
	DefaultRotate3D       bool  `json:"default_rotate_3d"`
	DefaultBinarySearch   bool  `json:"default_binary_search"`
	DefaultDeadlineMillis int64 `json:"default_deadline_ms"`
	DefaultValidateLevels bool  `json:"default_validate_levels"`

	// Containers offered when a job names none, in "WxDxH" form
	DefaultContainers []string `json:"default_containers"`

	// Application preferences
	LogLevel   string   `json:"log_level"` // "debug", "info", "warn", "error"
	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultRotate3D:       defaults.Rotate3D,
		DefaultBinarySearch:   defaults.BinarySearch,
		DefaultDeadlineMillis: defaults.DeadlineMillis,
		DefaultValidateLevels: defaults.ValidateLevels,
		DefaultContainers:     []string{},
		LogLevel:              "info",
		RecentJobs:            []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// This is used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Rotate3D = c.DefaultRotate3D
	s.BinarySearch = c.DefaultBinarySearch
	s.DeadlineMillis = c.DefaultDeadlineMillis
	s.ValidateLevels = c.DefaultValidateLevels
}

// AddRecentJob moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentJob(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentJobs = recent
}
