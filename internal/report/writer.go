package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer defines the interface for report bundle persistence.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a bundle doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Writer interface {
	// WriteReport atomically persists report.json for the report's run ID,
	// overwriting any existing bundle with the same ID.
	WriteReport(r *Report) error

	// LoadReport reads a bundle's report.json back.
	// Returns ErrNotFound if no bundle exists for this run ID.
	LoadReport(runID string) (*Report, error)

	// List returns metadata for all available bundles, possibly empty.
	List() ([]BundleInfo, error)

	// Delete removes the bundle directory and every artifact in it
	// (report.json, results.jsonl, plots/, index.html).
	// Returns ErrNotFound if no bundle exists for this run ID.
	Delete(runID string) error
}

// FSWriter implements Writer on the local filesystem. Bundles live under
// <baseDir>/runs/<runID>/. Writes use the temp-file + rename pattern, so no
// reader ever observes a partially written report.json.
type FSWriter struct {
	baseDir string
}

// NewFSWriter creates a filesystem-backed bundle writer.
// The baseDir is created if it doesn't exist.
func NewFSWriter(baseDir string) (*FSWriter, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSWriter{baseDir: baseDir}, nil
}

// RunDir returns the bundle directory for a run ID.
func (w *FSWriter) RunDir(runID string) string {
	return filepath.Join(w.baseDir, "runs", runID)
}

// PlotsDir creates and returns the bundle's plots directory.
func (w *FSWriter) PlotsDir(runID string) (string, error) {
	dir := filepath.Join(w.RunDir(runID), "plots")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plots directory: %w", err)
	}
	return dir, nil
}

func (w *FSWriter) reportPath(runID string) string {
	return filepath.Join(w.RunDir(runID), "report.json")
}

// WriteReport validates the report and atomically writes report.json.
func (w *FSWriter) WriteReport(r *Report) error {
	if r == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid report: %w", err)
	}

	runDir := w.RunDir(r.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	finalPath := w.reportPath(r.RunID)
	tempPath := finalPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp report file: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename report file: %w", err)
	}

	slog.Debug("Report written", "run_id", r.RunID, "path", finalPath)
	return nil
}

// LoadReport reads a bundle's report.json back.
func (w *FSWriter) LoadReport(runID string) (*Report, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	path := w.reportPath(runID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: runID}
		}
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &r, nil
}

// List returns metadata for every bundle under the base directory.
func (w *FSWriter) List() ([]BundleInfo, error) {
	runsDir := filepath.Join(w.baseDir, "runs")

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BundleInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var infos []BundleInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		r, err := w.LoadReport(entry.Name())
		if err != nil {
			slog.Warn("Failed to load bundle for listing", "run_id", entry.Name(), "error", err)
			continue
		}
		infos = append(infos, r.ToInfo())
	}

	slog.Debug("Listed report bundles", "count", len(infos))
	return infos, nil
}

// Delete removes a bundle directory and all its artifacts.
func (w *FSWriter) Delete(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}

	runDir := w.RunDir(runID)
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	} else if err != nil {
		return fmt.Errorf("failed to stat run directory: %w", err)
	}

	if err := os.RemoveAll(runDir); err != nil {
		return fmt.Errorf("failed to remove run directory: %w", err)
	}

	slog.Debug("Report bundle deleted", "run_id", runID, "path", runDir)
	return nil
}
