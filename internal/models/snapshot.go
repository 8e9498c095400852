package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// NamePrefix is prepended to every snapshot directory name
	NamePrefix = "save_"

	// TimestampLayout is the sortable timestamp embedded in snapshot names
	// Format: YYYY-MM-DD_HH-MM-SS
	TimestampLayout = "2006-01-02_15-04-05"

	// SaveGamesDir is the directory below the active location holding the save files
	SaveGamesDir = "SaveGames"
)

// DefaultFileSet is the ordered list of files that make up one complete save.
// The first member is the primary file used to date the active save.
var DefaultFileSet = []string{
	"SaveProfile.sav",
	"SaveProfile.susres.sav",
	"SaveProfile.susresvalid.sav",
}

// SnapshotName generates the snapshot directory name from a timestamp
// Format: save_YYYY-MM-DD_HH-MM-SS
func SnapshotName(timestamp time.Time) string {
	return NamePrefix + timestamp.Format(TimestampLayout)
}

// ParseSnapshotName extracts the timestamp embedded in a snapshot name
func ParseSnapshotName(name string) (time.Time, error) {
	if !strings.HasPrefix(name, NamePrefix) {
		return time.Time{}, fmt.Errorf("not a snapshot name: %s", name)
	}

	timestamp, err := time.ParseInLocation(TimestampLayout, strings.TrimPrefix(name, NamePrefix), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format: %w", err)
	}
	return timestamp, nil
}

// CompareNames orders snapshot names most-recent-first.
// Names embed a sortable timestamp, so descending lexicographic order is
// descending chronological order.
func CompareNames(a, b string) int {
	return strings.Compare(b, a)
}

// ActiveSaveDir returns the directory holding the live save files
func ActiveSaveDir(activeLocation string) string {
	return filepath.Join(activeLocation, SaveGamesDir)
}

// SnapshotPath returns the directory of a named snapshot
func SnapshotPath(snapshotRoot, name string) string {
	return filepath.Join(snapshotRoot, name)
}

// ValidName reports whether name can only refer to a direct child of the snapshot root
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
