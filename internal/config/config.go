package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/spf13/viper"
)

// DefaultActiveSubpath is the active save location below the user's home directory
var DefaultActiveSubpath = filepath.Join("AppData", "Local", "Returnal", "Steam", "Saved")

// BackupDirName is the snapshot root below the active location
const BackupDirName = "Backup"

// Locations is the pair of directories every snapshot operation works on
type Locations struct {
	Active string
	Backup string
}

// Load resolves the configured locations
func Load() Locations {
	return Locations{
		Active: GetActiveLocation(),
		Backup: GetBackupRoot(),
	}
}

// DefaultActiveLocation returns the active location derived from the home directory
func DefaultActiveLocation() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultActiveSubpath
	}
	return filepath.Join(home, DefaultActiveSubpath)
}

// GetActiveLocation returns the directory holding SaveGames/
func GetActiveLocation() string {
	if active := viper.GetString("paths.active"); active != "" {
		return active
	}
	return DefaultActiveLocation()
}

// GetBackupRoot returns the snapshot root, defaulting to Backup/ inside the active location
func GetBackupRoot() string {
	if backup := viper.GetString("paths.backup"); backup != "" {
		return backup
	}
	return filepath.Join(GetActiveLocation(), BackupDirName)
}

// GetFileSet returns the ordered save file names
func GetFileSet() []string {
	files := viper.GetStringSlice("snapshot.files")
	if len(files) == 0 {
		return models.DefaultFileSet
	}
	return files
}

// GetWatchDebounce returns how long file events are coalesced before saving
func GetWatchDebounce() time.Duration {
	return viper.GetDuration("watch.debounce")
}

// GetWatchStability returns how long the primary file must stay unchanged before saving
func GetWatchStability() time.Duration {
	return viper.GetDuration("watch.stability")
}

// GetWatchSchedule returns the cron schedule for periodic saves, empty when disabled
func GetWatchSchedule() string {
	return viper.GetString("watch.schedule")
}

// GetWatchFsnotify reports whether file change events trigger saves
func GetWatchFsnotify() bool {
	return viper.GetBool("watch.fsnotify")
}

// GetLogLevel returns the diagnostic log level
func GetLogLevel() string {
	return viper.GetString("log.level")
}
