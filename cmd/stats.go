package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/spf13/cobra"
)

var statsFormat outputFormat

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show checkpoint statistics",
	Long: `Display statistics about your checkpoints including:
  - Total checkpoint count and disk usage
  - Oldest and newest checkpoint
  - Incomplete checkpoints (missing save files)
  - Daily activity

Examples:
  checkpoint stats
  checkpoint stats --json
  checkpoint stats --toon`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsFormat.JSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsFormat.Toon, "toon", false, "Output in LLM-friendly toon format")
}

type snapshotStats struct {
	TotalSnapshots int             `json:"total_snapshots"`
	Complete       int             `json:"complete"`
	Incomplete     []string        `json:"incomplete,omitempty"`
	Unrecognized   []string        `json:"unrecognized,omitempty"`
	TotalSize      int64           `json:"total_size"`
	OldestSnapshot *time.Time      `json:"oldest_snapshot,omitempty"`
	NewestSnapshot *time.Time      `json:"newest_snapshot,omitempty"`
	ByDate         map[string]int  `json:"by_date"`
	DailyActivity  []dailyActivity `json:"daily_activity"`
}

type dailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := collectStats(newSession())
	if err != nil {
		return err
	}

	if ok, err := statsFormat.print(stats); ok || err != nil {
		return err
	}

	if stats.TotalSnapshots == 0 {
		fmt.Println("No checkpoints found")
		return nil
	}

	// Display human-readable stats
	fmt.Println("Checkpoint Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Total Checkpoints: %d\n", stats.TotalSnapshots)
	fmt.Printf("Disk Usage:        %s\n", formatBytes(stats.TotalSize))
	if stats.OldestSnapshot != nil && stats.NewestSnapshot != nil {
		fmt.Printf("Date Range:        %s to %s\n",
			stats.OldestSnapshot.Format("2006-01-02"),
			stats.NewestSnapshot.Format("2006-01-02"))
	}
	fmt.Println()

	if len(stats.Incomplete) > 0 {
		fmt.Println("Incomplete:")
		for _, name := range stats.Incomplete {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
	}

	if len(stats.Unrecognized) > 0 {
		fmt.Println("Unrecognized directories:")
		for _, name := range stats.Unrecognized {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
	}

	// Recent activity
	if len(stats.DailyActivity) > 0 {
		fmt.Println("Recent Activity:")
		limit := 7
		if len(stats.DailyActivity) < limit {
			limit = len(stats.DailyActivity)
		}
		for i := 0; i < limit; i++ {
			da := stats.DailyActivity[i]
			bar := strings.Repeat("█", min(da.Count, 20))
			fmt.Printf("  %s  %3d  %s\n", da.Date, da.Count, bar)
		}
	}

	return nil
}

func collectStats(sess *session.Session) (*snapshotStats, error) {
	names, err := sess.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	stats := &snapshotStats{
		ByDate: make(map[string]int),
	}

	for _, name := range names {
		stats.TotalSnapshots++

		info, err := sess.Inspect(name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", name, err)
		}
		stats.TotalSize += info.TotalSize
		if info.Complete {
			stats.Complete++
		} else {
			stats.Incomplete = append(stats.Incomplete, name)
		}

		ts, err := models.ParseSnapshotName(name)
		if err != nil {
			stats.Unrecognized = append(stats.Unrecognized, name)
			continue
		}

		// Track oldest/newest
		if stats.OldestSnapshot == nil || ts.Before(*stats.OldestSnapshot) {
			t := ts
			stats.OldestSnapshot = &t
		}
		if stats.NewestSnapshot == nil || ts.After(*stats.NewestSnapshot) {
			t := ts
			stats.NewestSnapshot = &t
		}

		stats.ByDate[ts.Format("2006-01-02")]++
	}

	// Build daily activity
	for date, count := range stats.ByDate {
		stats.DailyActivity = append(stats.DailyActivity, dailyActivity{Date: date, Count: count})
	}
	sort.Slice(stats.DailyActivity, func(i, j int) bool {
		return stats.DailyActivity[i].Date > stats.DailyActivity[j].Date
	})

	return stats, nil
}
