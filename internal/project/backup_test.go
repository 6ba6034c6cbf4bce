package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StackFit/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	jobPath := filepath.Join(dir, "job.json")
	job, err := NewJob("Shipment", model.DefaultAppConfig())
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := SaveJob(jobPath, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	cfg := model.DefaultAppConfig()
	cfg.LogLevel = "debug"
	cfg.RecentJobs = []string{jobPath, filepath.Join(dir, "gone.json")}

	if err := ExportAllData(path, cfg); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != JobVersion {
		t.Errorf("expected version %s, got %s", JobVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", backup.Config.LogLevel)
	}
	if len(backup.Jobs) != 1 || backup.Jobs[0].Name != "Shipment" {
		t.Errorf("expected the one readable job, got %+v", backup.Jobs)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}
