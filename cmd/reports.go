package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/linefit/internal/report"
)

var (
	reportsDir    string
	keepLast      int
	olderThanDays int
	forceClean    bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage report bundles",
	Long:  `Manage report bundles including listing and cleaning old runs.`,
}

var listReportsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all report bundles",
	Long:  `Display all bundles with run ID, creation time, scenario count, seed, and size.`,
	RunE:  runListReports,
}

var cleanReportsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean old report bundles",
	Long: `Delete old bundles based on retention policy: keep only the last N
bundles, or delete bundles older than N days.`,
	RunE: runCleanReports,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(listReportsCmd)
	reportsCmd.AddCommand(cleanReportsCmd)

	reportsCmd.PersistentFlags().StringVar(&reportsDir, "out", "./reports", "Base directory for report bundles")

	cleanReportsCmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the last N bundles (0 = keep all)")
	cleanReportsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete bundles older than N days (0 = no age limit)")
	cleanReportsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListReports(cmd *cobra.Command, args []string) error {
	writer, err := report.NewFSWriter(reportsDir)
	if err != nil {
		return fmt.Errorf("failed to open report directory: %w", err)
	}

	infos, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list bundles: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No report bundles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tSCENARIOS\tSEED\tSIZE")
	fmt.Fprintln(w, "------\t-------\t---------\t----\t----")

	for _, info := range infos {
		size, err := getDirSize(writer.RunDir(info.RunID))
		sizeStr := "unknown"
		if err == nil {
			sizeStr = formatBytes(size)
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			shortRunID(info.RunID),
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.Scenarios,
			info.Seed,
			sizeStr,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal bundles: %d\n", len(infos))
	return nil
}

func runCleanReports(cmd *cobra.Command, args []string) error {
	if keepLast == 0 && olderThanDays == 0 {
		return fmt.Errorf("must specify either --keep-last or --older-than")
	}

	writer, err := report.NewFSWriter(reportsDir)
	if err != nil {
		return fmt.Errorf("failed to open report directory: %w", err)
	}

	infos, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list bundles: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No bundles to clean.")
		return nil
	}

	toDelete := selectBundlesForDeletion(infos, keepLast, olderThanDays)
	if len(toDelete) == 0 {
		fmt.Println("No bundles match deletion criteria.")
		return nil
	}

	fmt.Printf("Found %d bundle(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Printf("  - %s (%d scenarios, %s)\n",
			shortRunID(info.RunID),
			info.Scenarios,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}

	if !forceClean {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	failed := 0
	for _, info := range toDelete {
		if err := writer.Delete(info.RunID); err != nil {
			slog.Error("Failed to delete bundle", "run_id", info.RunID, "error", err)
			failed++
		} else {
			slog.Info("Deleted bundle", "run_id", info.RunID)
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d bundle(s), %d failed.\n", deleted, failed)
	return nil
}

// selectBundlesForDeletion applies the retention policy: bundles older than
// the age cutoff are deleted, and when more than keepLast bundles exist the
// oldest surplus is deleted too.
func selectBundlesForDeletion(infos []report.BundleInfo, keepLast, olderThanDays int) []report.BundleInfo {
	marked := make(map[string]bool)
	var toDelete []report.BundleInfo

	if olderThanDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -olderThanDays)
		for _, info := range infos {
			if info.CreatedAt.Before(cutoff) && !marked[info.RunID] {
				marked[info.RunID] = true
				toDelete = append(toDelete, info)
			}
		}
	}

	if keepLast > 0 && len(infos) > keepLast {
		sorted := make([]report.BundleInfo, len(infos))
		copy(sorted, infos)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})

		for _, info := range sorted[:len(sorted)-keepLast] {
			if !marked[info.RunID] {
				marked[info.RunID] = true
				toDelete = append(toDelete, info)
			}
		}
	}

	return toDelete
}

func shortRunID(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
