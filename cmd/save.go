package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pders01/checkpoint/internal/session"
	"github.com/pders01/checkpoint/internal/store"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Snapshot the current save",
	Long: `Copy the current save files into a new immutable snapshot.

The snapshot is named after the modification time of the primary save file:
  save_YYYY-MM-DD_HH-MM-SS

Saving again before the game writes a new save is a no-op and exits with
status 3. When there is no save at all, nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	sess := newSession()
	log := newLogger()

	res, err := sess.Save()
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	switch res.Status {
	case session.NothingToSave:
		fmt.Printf("No save found at %s. Nothing to save.\n", sess.PrimaryPath())
		return nil

	case session.AlreadySaved:
		return fmt.Errorf("checkpoint %s already exists, not saved (snapshots are immutable): %w", res.Name, store.ErrAlreadyExists)
	}

	log.Debug("snapshot created", "snapshot", res.Name, "backup", sess.Locations().Backup)

	fmt.Printf("Current save is from %s.\n", res.Timestamp.Format(time.ANSIC))
	fmt.Printf("✓ Checkpoint saved: %s\n", res.Name)
	fmt.Printf("  Location: %s\n", filepath.Join(sess.Locations().Backup, res.Name))

	return nil
}
