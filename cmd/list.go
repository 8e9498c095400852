package cmd

import (
	"fmt"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/spf13/cobra"
)

var (
	listLong   bool
	listLimit  int
	listToday  bool
	listSince  string
	listFormat outputFormat
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List checkpoints, most recent first",
	Long: `List all checkpoints in the snapshot root, most recent first.
The first entry is the default for restore.

Examples:
  checkpoint list
  checkpoint list --long
  checkpoint list --today
  checkpoint list --since 2025-10-01 --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show files and sizes of each checkpoint")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most N checkpoints (0 = all)")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show only today's checkpoints")
	listCmd.Flags().StringVar(&listSince, "since", "", "Show checkpoints since date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listFormat.JSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listFormat.Toon, "toon", false, "Output in LLM-friendly toon format")
	listCmd.Flags().BoolVar(&listFormat.YAML, "yaml", false, "Output as YAML")
}

type listEntry struct {
	Name      string       `json:"name" yaml:"name"`
	Timestamp *time.Time   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Latest    bool         `json:"latest" yaml:"latest"`
	Info      *models.Info `json:"info,omitempty" yaml:"info,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	sess := newSession()

	entries, err := collectSnapshots(sess)
	if err != nil {
		return err
	}

	if ok, err := listFormat.print(entries); ok || err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No checkpoints found in %s\n", sess.Locations().Backup)
		return nil
	}

	fmt.Printf("Found %d checkpoint(s):\n\n", len(entries))
	for _, e := range entries {
		marker := " "
		if e.Latest {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, e.Name)

		if e.Info != nil {
			status := "complete"
			if !e.Info.Complete {
				status = fmt.Sprintf("incomplete, missing %v", e.Info.Missing())
			}
			fmt.Printf("    Files:  %d/%d (%s)\n", len(e.Info.Files)-len(e.Info.Missing()), len(e.Info.Files), status)
			fmt.Printf("    Size:   %s\n", formatBytes(e.Info.TotalSize))
		}
	}

	return nil
}

// collectSnapshots lists checkpoints and applies the list filters
func collectSnapshots(sess *session.Session) ([]listEntry, error) {
	names, err := sess.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	var since time.Time
	if listSince != "" {
		since, err = time.ParseInLocation("2006-01-02", listSince, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --since date format (use YYYY-MM-DD): %w", err)
		}
	}
	today := time.Now().Format("2006-01-02")

	entries := []listEntry{}
	for i, name := range names {
		entry := listEntry{Name: name, Latest: i == 0}

		ts, err := models.ParseSnapshotName(name)
		if err == nil {
			entry.Timestamp = &ts
		}

		if listToday && (entry.Timestamp == nil || entry.Timestamp.Format("2006-01-02") != today) {
			continue
		}
		if !since.IsZero() && (entry.Timestamp == nil || entry.Timestamp.Before(since)) {
			continue
		}

		if listLong {
			info, err := sess.Inspect(name)
			if err != nil {
				return nil, fmt.Errorf("failed to inspect %s: %w", name, err)
			}
			entry.Info = &info
		}

		entries = append(entries, entry)
		if listLimit > 0 && len(entries) == listLimit {
			break
		}
	}

	return entries, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
