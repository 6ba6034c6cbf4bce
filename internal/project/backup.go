package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/StackFit/internal/model"
)

// BackupData is the top-level structure for exporting the application
// config together with the recent jobs it points to.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Jobs      []Job           `json:"jobs"`
}

// ExportAllData writes the config and every readable recent job to a single
// JSON file. Recent jobs that no longer load are left out.
func ExportAllData(exportPath string, config model.AppConfig) error {
	backup := BackupData{
		Version:   JobVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Jobs:      []Job{},
	}
	for _, path := range config.RecentJobs {
		job, err := LoadJob(path)
		if err != nil {
			continue
		}
		backup.Jobs = append(backup.Jobs, job)
	}

	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	normalizeConfig(&backup.Config)
	if backup.Jobs == nil {
		backup.Jobs = []Job{}
	}
	return backup, nil
}
