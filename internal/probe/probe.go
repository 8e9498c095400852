// Package probe inspects the active save location.
// It reports when the primary save file was last written, which dates a new snapshot.
package probe

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/spf13/afero"
)

// Probe stats the primary save file of an active location
type Probe struct {
	fs      afero.Fs
	primary string
}

// New creates a probe for the given primary file name.
// An empty primary falls back to the first member of the default FileSet.
func New(fsys afero.Fs, primary string) *Probe {
	if primary == "" {
		primary = models.DefaultFileSet[0]
	}
	return &Probe{fs: fsys, primary: primary}
}

// PrimaryPath returns the path of the primary save file
func (p *Probe) PrimaryPath(activeLocation string) string {
	return filepath.Join(models.ActiveSaveDir(activeLocation), p.primary)
}

// Probe returns the modification time of the primary save file.
// ok is false when no active save exists; that is not an error.
func (p *Probe) Probe(activeLocation string) (modTime time.Time, ok bool, err error) {
	path := p.PrimaryPath(activeLocation)

	info, err := p.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to stat active save %s: %w", path, err)
	}

	if info.IsDir() {
		return time.Time{}, false, fmt.Errorf("active save %s is a directory", path)
	}

	return info.ModTime(), true, nil
}
