package project

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/StackFit/internal/model"
)

// JobVersion is written into every saved job file.
const JobVersion = "1.0.0"

// Job is a saved packing task: the boxes, the candidate containers, the
// settings used and, once packed, the result.
type Job struct {
	Version    string            `json:"version"`
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Boxes      []model.BoxItem   `json:"boxes"`
	Containers []model.Extent    `json:"containers"`
	Settings   model.Settings    `json:"settings"`
	Result     *model.PackResult `json:"result,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewJob creates an empty job using the saved defaults from config.
func NewJob(name string, config model.AppConfig) (Job, error) {
	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)

	job := Job{
		Version:    JobVersion,
		ID:         uuid.New().String()[:8],
		Name:       name,
		Boxes:      []model.BoxItem{},
		Containers: []model.Extent{},
		Settings:   settings,
	}
	for _, s := range config.DefaultContainers {
		e, err := model.ParseExtent(strings.TrimSpace(s))
		if err != nil {
			return Job{}, fmt.Errorf("default container: %w", err)
		}
		job.Containers = append(job.Containers, e)
	}
	return job, nil
}

// SaveJob writes the job to path as JSON, stamping the version and update time.
func SaveJob(path string, job Job) error {
	job.Version = JobVersion
	job.UpdatedAt = time.Now().UTC()
	if err := writeJSON(path, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// LoadJob reads a job file. Hand-written files may leave out the version,
// ID and settings; missing settings take the package defaults.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	job := Job{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("failed to parse job file: %w", err)
	}

	if job.ID == "" {
		job.ID = uuid.New().String()[:8]
	}
	if job.Boxes == nil {
		job.Boxes = []model.BoxItem{}
	}
	if job.Containers == nil {
		job.Containers = []model.Extent{}
	}
	for i := range job.Boxes {
		if job.Boxes[i].ID == "" {
			job.Boxes[i].ID = uuid.New().String()[:8]
		}
	}
	return job, nil
}
