package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/linefit/internal/report"
)

func TestSelectBundlesForDeletion_ByAge(t *testing.T) {
	now := time.Now()
	infos := []report.BundleInfo{
		{RunID: "run1", CreatedAt: now.AddDate(0, 0, -10)},
		{RunID: "run2", CreatedAt: now.AddDate(0, 0, -5)},
		{RunID: "run3", CreatedAt: now.AddDate(0, 0, -1)},
		{RunID: "run4", CreatedAt: now.AddDate(0, 0, -30)},
	}

	toDelete := selectBundlesForDeletion(infos, 0, 7)

	if len(toDelete) != 2 {
		t.Fatalf("Expected 2 bundles to delete, got %d", len(toDelete))
	}
	if !containsBundle(toDelete, "run1") || !containsBundle(toDelete, "run4") {
		t.Error("Expected run1 and run4 to be selected for deletion")
	}
}

func TestSelectBundlesForDeletion_ByCount(t *testing.T) {
	now := time.Now()
	infos := []report.BundleInfo{
		{RunID: "run1", CreatedAt: now.AddDate(0, 0, -10)},
		{RunID: "run2", CreatedAt: now.AddDate(0, 0, -5)},
		{RunID: "run3", CreatedAt: now.AddDate(0, 0, -1)},
		{RunID: "run4", CreatedAt: now.AddDate(0, 0, -30)},
	}

	// Keep only the two newest bundles.
	toDelete := selectBundlesForDeletion(infos, 2, 0)

	if len(toDelete) != 2 {
		t.Fatalf("Expected 2 bundles to delete, got %d", len(toDelete))
	}
	if !containsBundle(toDelete, "run1") || !containsBundle(toDelete, "run4") {
		t.Error("Expected the oldest bundles run1 and run4 to be selected")
	}
}

func TestSelectBundlesForDeletion_CombinedNoDuplicates(t *testing.T) {
	now := time.Now()
	infos := []report.BundleInfo{
		{RunID: "run1", CreatedAt: now.AddDate(0, 0, -10)},
		{RunID: "run2", CreatedAt: now.AddDate(0, 0, -5)},
		{RunID: "run3", CreatedAt: now.AddDate(0, 0, -1)},
		{RunID: "run4", CreatedAt: now.AddDate(0, 0, -30)},
		{RunID: "run5", CreatedAt: now.AddDate(0, 0, -2)},
	}

	// run1 and run4 match both the age cutoff and the count surplus;
	// each must appear once.
	toDelete := selectBundlesForDeletion(infos, 3, 7)

	if len(toDelete) != 2 {
		t.Fatalf("Expected 2 bundles to delete, got %d", len(toDelete))
	}
	seen := make(map[string]int)
	for _, info := range toDelete {
		seen[info.RunID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("Bundle %s selected %d times", id, count)
		}
	}
}

func TestSelectBundlesForDeletion_NothingToDo(t *testing.T) {
	now := time.Now()
	infos := []report.BundleInfo{
		{RunID: "run1", CreatedAt: now.AddDate(0, 0, -1)},
	}

	if toDelete := selectBundlesForDeletion(infos, 5, 30); len(toDelete) != 0 {
		t.Errorf("Expected no bundles to delete, got %d", len(toDelete))
	}
}

func containsBundle(infos []report.BundleInfo, runID string) bool {
	for _, info := range infos {
		if info.RunID == runID {
			return true
		}
	}
	return false
}

func TestShortRunID(t *testing.T) {
	if got := shortRunID("abc"); got != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}
	long := "0123456789abcdef"
	if got := shortRunID(long); got != "0123456789ab..." {
		t.Errorf("Expected truncated ID, got %s", got)
	}
}

func TestGetDirSize(t *testing.T) {
	tmpDir := t.TempDir()

	content := []byte("Hello, World!")
	if err := os.WriteFile(filepath.Join(tmpDir, "test.txt"), content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	size, err := getDirSize(tmpDir)
	if err != nil {
		t.Fatalf("getDirSize failed: %v", err)
	}
	if size < int64(len(content)) {
		t.Errorf("Expected size >= %d, got %d", len(content), size)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.in); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
