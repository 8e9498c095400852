package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/spf13/cobra"
)

var restoreDryRun bool

var restoreCmd = &cobra.Command{
	Use:   "restore [checkpoint]",
	Short: "Restore a checkpoint over the current save",
	Long: `Copy the files of a checkpoint back into the save directory,
overwriting the current save. The current save is NOT backed up first;
run "checkpoint save" beforehand if you want to keep it.

Without an argument the most recent checkpoint is restored.

Example:
  checkpoint restore save_2025-11-14_09-30-12
  checkpoint restore --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "Show what would be copied without writing")
}

func runRestore(cmd *cobra.Command, args []string) error {
	sess := newSession()
	log := newLogger()

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		latest, err := sess.Latest()
		if err != nil {
			return fmt.Errorf("nothing to restore: %w", err)
		}
		name = latest
	}

	locs := sess.Locations()
	src := filepath.Join(locs.Backup, name)
	dst := models.ActiveSaveDir(locs.Active)

	if restoreDryRun {
		info, err := sess.Inspect(name)
		if err != nil {
			return fmt.Errorf("failed to load checkpoint: %w", err)
		}

		fmt.Printf("Would restore %s\n", name)
		for _, f := range info.Files {
			state := "overwrite"
			if !f.Present {
				state = "MISSING in checkpoint"
			}
			fmt.Printf("  %s -> %s (%s)\n", filepath.Join(src, f.Name), filepath.Join(dst, f.Name), state)
		}
		fmt.Println("\nThis is a dry run. Run without --dry-run to restore.")
		return nil
	}

	log.Debug("restoring", "snapshot", name, "destination", dst)

	if err := sess.Restore(name); err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	fmt.Printf("✓ Checkpoint loaded from %s\n", src)
	return nil
}
