package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showFormat outputFormat

var showCmd = &cobra.Command{
	Use:   "show <checkpoint>",
	Short: "Show the files of a checkpoint",
	Long: `Display the files stored in a checkpoint with their sizes.

Example:
  checkpoint show save_2025-11-14_09-30-12`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showFormat.JSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showFormat.Toon, "toon", false, "Output in LLM-friendly toon format")
}

func runShow(cmd *cobra.Command, args []string) error {
	info, err := newSession().Inspect(args[0])
	if err != nil {
		return fmt.Errorf("failed to read checkpoint: %w", err)
	}

	if ok, err := showFormat.print(info); ok || err != nil {
		return err
	}

	fmt.Printf("Checkpoint: %s\n\n", info.Name)
	if !info.Timestamp.IsZero() {
		fmt.Printf("Saved:    %s\n", info.Timestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Size:     %s\n", formatBytes(info.TotalSize))
	if info.Complete {
		fmt.Printf("Status:   complete\n")
	} else {
		fmt.Printf("Status:   incomplete\n")
	}

	fmt.Println("\nFiles:")
	for _, f := range info.Files {
		if !f.Present {
			fmt.Printf("  %-32s missing\n", f.Name)
			continue
		}
		fmt.Printf("  %-32s %10s  %s\n", f.Name, formatBytes(f.Size), f.ModTime.Format("2006-01-02 15:04:05"))
	}

	return nil
}
