package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var diffFormat outputFormat

var diffCmd = &cobra.Command{
	Use:   "diff [checkpoint]",
	Short: "Compare a checkpoint with the current save",
	Long: `Compare the files of a checkpoint with the current save and show
which files are identical, which differ, and which are missing on either side.
Without an argument the most recent checkpoint is compared.

Example:
  checkpoint diff save_2025-11-14_09-30-12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffFormat.JSON, "json", false, "Output as JSON")
	diffCmd.Flags().BoolVar(&diffFormat.Toon, "toon", false, "Output in LLM-friendly toon format")
}

// File comparison states
const (
	diffIdentical       = "identical"
	diffChanged         = "changed"
	diffMissingSnapshot = "missing-in-checkpoint"
	diffMissingActive   = "missing-in-save"
	diffMissingBoth     = "missing"
)

type snapshotDiff struct {
	Checkpoint     string     `json:"checkpoint"`
	SavedAt        *time.Time `json:"saved_at,omitempty"`
	ActiveModified *time.Time `json:"active_modified,omitempty"`
	Files          []fileDiff `json:"files"`
	Identical      bool       `json:"identical"`
}

type fileDiff struct {
	Name           string `json:"name"`
	State          string `json:"state"`
	CheckpointSize int64  `json:"checkpoint_size"`
	ActiveSize     int64  `json:"active_size"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	sess := newSession()

	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		latest, err := sess.Latest()
		if err != nil {
			return fmt.Errorf("nothing to compare: %w", err)
		}
		name = latest
	}

	diff, err := compareWithActive(sess, name)
	if err != nil {
		return err
	}

	if ok, err := diffFormat.print(diff); ok || err != nil {
		return err
	}

	fmt.Printf("Checkpoint: %s\n", diff.Checkpoint)
	if diff.ActiveModified != nil {
		fmt.Printf("Current save from: %s\n", diff.ActiveModified.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()

	for _, f := range diff.Files {
		switch f.State {
		case diffChanged:
			fmt.Printf("  ~ %-32s %s -> %s\n", f.Name, formatBytes(f.CheckpointSize), formatBytes(f.ActiveSize))
		case diffIdentical:
			fmt.Printf("  = %-32s %s\n", f.Name, formatBytes(f.ActiveSize))
		default:
			fmt.Printf("  ! %-32s %s\n", f.Name, f.State)
		}
	}

	if diff.Identical {
		fmt.Println("\n✓ Current save matches the checkpoint")
	}

	return nil
}

// compareWithActive compares every FileSet member of a checkpoint with the active save
func compareWithActive(sess *session.Session, name string) (*snapshotDiff, error) {
	info, err := sess.Inspect(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	locs := sess.Locations()
	diff := &snapshotDiff{Checkpoint: name, Identical: true}
	if !info.Timestamp.IsZero() {
		ts := info.Timestamp
		diff.SavedAt = &ts
	}
	if modTime, ok, err := sess.Probe(); err == nil && ok {
		diff.ActiveModified = &modTime
	}

	for _, f := range info.Files {
		fd := fileDiff{Name: f.Name, CheckpointSize: f.Size}

		snapData, snapErr := readOptional(filepath.Join(locs.Backup, name, f.Name), f.Present)
		if snapErr != nil {
			return nil, snapErr
		}
		activeData, activeErr := readOptional(filepath.Join(models.ActiveSaveDir(locs.Active), f.Name), true)
		if activeErr != nil {
			return nil, activeErr
		}
		if activeData != nil {
			fd.ActiveSize = int64(len(activeData))
		}

		switch {
		case snapData == nil && activeData == nil:
			fd.State = diffMissingBoth
		case snapData == nil:
			fd.State = diffMissingSnapshot
		case activeData == nil:
			fd.State = diffMissingActive
		case bytes.Equal(snapData, activeData):
			fd.State = diffIdentical
		default:
			fd.State = diffChanged
		}

		if fd.State != diffIdentical {
			diff.Identical = false
		}
		diff.Files = append(diff.Files, fd)
	}

	return diff, nil
}

// readOptional reads a file, returning nil content when it does not exist
func readOptional(path string, expected bool) ([]byte, error) {
	if !expected {
		return nil, nil
	}

	data, err := afero.ReadFile(appFs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
