package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <template>",
	Short: "Generate pre-defined reports",
	Long: `Generate formatted reports using pre-defined templates.

Available templates:
  daily   - Summary stats plus today's checkpoints

Examples:
  checkpoint report daily`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	template := args[0]

	switch template {
	case "daily":
		return generateDailyReport()
	default:
		return fmt.Errorf("unknown report template: %s (available: daily)", template)
	}
}

func generateDailyReport() error {
	fmt.Println("Daily Checkpoint Report")
	fmt.Println("═══════════════════════")
	fmt.Println()

	// Show stats
	fmt.Println("Summary")
	fmt.Println("───────")
	oldStats := statsFormat
	statsFormat = outputFormat{}
	err := runStats(&cobra.Command{}, []string{})
	statsFormat = oldStats
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Today's Checkpoints")
	fmt.Println("───────────────────")

	// Temporarily set list flags
	oldToday, oldLong, oldSince, oldLimit, oldFormat := listToday, listLong, listSince, listLimit, listFormat

	listToday = true
	listLong = true
	listSince = ""
	listLimit = 0
	listFormat = outputFormat{}

	err = runList(&cobra.Command{}, []string{})

	// Restore flags
	listToday, listLong, listSince, listLimit, listFormat = oldToday, oldLong, oldSince, oldLimit, oldFormat

	return err
}
