// Package store manages the snapshot root: it lists, creates, inspects and
// restores snapshot directories holding one copy of the save FileSet.
//
// The store performs no logging and keeps no in-process state besides its
// configuration, so every call reflects the filesystem at call time.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/spf13/afero"
)

// Store creates and restores snapshots of a fixed FileSet
type Store struct {
	fs      afero.Fs
	fileSet []string
}

// New creates a store copying the given FileSet, in order.
// A nil or empty fileSet falls back to models.DefaultFileSet.
func New(fsys afero.Fs, fileSet []string) *Store {
	if len(fileSet) == 0 {
		fileSet = models.DefaultFileSet
	}
	return &Store{
		fs:      fsys,
		fileSet: slices.Clone(fileSet),
	}
}

// List returns the snapshot names under snapshotRoot, most recent first.
// Only directories are returned. A missing root yields no snapshots.
func (s *Store) List(snapshotRoot string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, snapshotRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot root %s: %w", snapshotRoot, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	slices.SortFunc(names, models.CompareNames)
	return names, nil
}

// Latest returns the most recent snapshot name
func (s *Store) Latest(snapshotRoot string) (string, error) {
	names, err := s.List(snapshotRoot)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no snapshots in %s: %w", snapshotRoot, ErrNotFound)
	}
	return names[0], nil
}

// Create copies the FileSet from the active location into a new snapshot
// named after timestamp. An existing snapshot of that name is left untouched
// and ErrAlreadyExists is returned. If a copy fails the partial snapshot
// directory is removed and a *FileIOError is returned.
func (s *Store) Create(snapshotRoot, activeLocation string, timestamp time.Time) (string, error) {
	name := models.SnapshotName(timestamp)
	dir := models.SnapshotPath(snapshotRoot, name)

	if st, err := s.fs.Stat(dir); err == nil {
		if !st.IsDir() {
			return name, fmt.Errorf("cannot create snapshot %s: %s exists and is not a directory", name, dir)
		}
		return name, fmt.Errorf("%s: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return name, fmt.Errorf("failed to check snapshot %s: %w", name, err)
	}

	srcDir := models.ActiveSaveDir(activeLocation)
	if err := s.checkSources(OpCreate, srcDir, dir); err != nil {
		return name, err
	}

	if err := s.fs.MkdirAll(snapshotRoot, 0o755); err != nil {
		return name, fmt.Errorf("failed to create snapshot root %s: %w", snapshotRoot, err)
	}

	// Mkdir fails on an existing directory, so a concurrent create of the
	// same name cannot overwrite a finished snapshot.
	if err := s.fs.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return name, fmt.Errorf("%s: %w", name, ErrAlreadyExists)
		}
		return name, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	if err := s.copySet(OpCreate, srcDir, dir); err != nil {
		if rmErr := s.fs.RemoveAll(dir); rmErr != nil {
			return name, errors.Join(err, fmt.Errorf("failed to remove partial snapshot %s: %w", dir, rmErr))
		}
		return name, err
	}

	return name, nil
}

// Restore copies the FileSet of a snapshot over the active save files.
// Every member is checked for presence before anything is overwritten.
// The previous active state is not preserved.
func (s *Store) Restore(snapshotRoot, snapshotName, activeLocation string) error {
	dir, err := s.snapshotDir(snapshotRoot, snapshotName)
	if err != nil {
		return err
	}

	dstDir := models.ActiveSaveDir(activeLocation)
	if err := s.checkSources(OpRestore, dir, dstDir); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory %s: %w", dstDir, err)
	}

	return s.copySet(OpRestore, dir, dstDir)
}

// Inspect describes the contents of one snapshot
func (s *Store) Inspect(snapshotRoot, snapshotName string) (models.Info, error) {
	dir, err := s.snapshotDir(snapshotRoot, snapshotName)
	if err != nil {
		return models.Info{}, err
	}

	info := models.Info{
		Name:     snapshotName,
		Complete: true,
	}
	if ts, err := models.ParseSnapshotName(snapshotName); err == nil {
		info.Timestamp = ts
	}

	for _, file := range s.fileSet {
		fi := models.FileInfo{Name: file}

		st, err := s.fs.Stat(filepath.Join(dir, file))
		switch {
		case err == nil && !st.IsDir():
			fi.Present = true
			fi.Size = st.Size()
			fi.ModTime = st.ModTime()
			info.TotalSize += st.Size()
		case err == nil || errors.Is(err, fs.ErrNotExist):
			info.Complete = false
		default:
			return models.Info{}, fmt.Errorf("failed to stat %s in %s: %w", file, snapshotName, err)
		}

		info.Files = append(info.Files, fi)
	}

	return info, nil
}

// snapshotDir resolves a snapshot name to an existing directory
func (s *Store) snapshotDir(snapshotRoot, snapshotName string) (string, error) {
	if !models.ValidName(snapshotName) {
		return "", fmt.Errorf("%q: %w", snapshotName, ErrNotFound)
	}

	dir := models.SnapshotPath(snapshotRoot, snapshotName)
	st, err := s.fs.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", snapshotName, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat snapshot %s: %w", snapshotName, err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("%s is not a directory: %w", snapshotName, ErrNotFound)
	}

	return dir, nil
}

// checkSources verifies every FileSet member exists in srcDir as a regular file
func (s *Store) checkSources(op, srcDir, dstDir string) error {
	for _, file := range s.fileSet {
		src := filepath.Join(srcDir, file)

		st, err := s.fs.Stat(src)
		if err == nil && st.IsDir() {
			err = fmt.Errorf("%s is a directory", src)
		}
		if err != nil {
			return &FileIOError{
				Op:   op,
				File: file,
				Src:  src,
				Dst:  filepath.Join(dstDir, file),
				Err:  err,
			}
		}
	}
	return nil
}

// copySet copies the FileSet in order and stops at the first failure
func (s *Store) copySet(op, srcDir, dstDir string) error {
	for _, file := range s.fileSet {
		src := filepath.Join(srcDir, file)
		dst := filepath.Join(dstDir, file)

		if err := copyFile(s.fs, src, dst); err != nil {
			return &FileIOError{
				Op:   op,
				File: file,
				Src:  src,
				Dst:  dst,
				Err:  err,
			}
		}
	}
	return nil
}
