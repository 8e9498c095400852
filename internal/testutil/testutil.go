package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/spf13/afero"
)

// SaveFixture is an active save location with a sibling backup root
type SaveFixture struct {
	Fs     afero.Fs
	Active string
	Backup string
	T      *testing.T
}

// NewSaveFixture creates an empty active location on an in-memory filesystem
func NewSaveFixture(t *testing.T) *SaveFixture {
	t.Helper()

	return newFixture(t, afero.NewMemMapFs(), filepath.FromSlash("/game/Saved"))
}

// NewOsSaveFixture creates an empty active location in a temporary directory
func NewOsSaveFixture(t *testing.T) *SaveFixture {
	t.Helper()

	return newFixture(t, afero.NewOsFs(), filepath.Join(t.TempDir(), "Saved"))
}

func newFixture(t *testing.T, fsys afero.Fs, active string) *SaveFixture {
	t.Helper()

	if err := fsys.MkdirAll(models.ActiveSaveDir(active), 0755); err != nil {
		t.Fatalf("failed to create save directory: %v", err)
	}

	return &SaveFixture{
		Fs:     fsys,
		Active: active,
		Backup: filepath.Join(active, "Backup"),
		T:      t,
	}
}

// WriteSave writes files into the active SaveGames directory
func (f *SaveFixture) WriteSave(files map[string][]byte) {
	f.T.Helper()
	for name, content := range files {
		path := filepath.Join(models.ActiveSaveDir(f.Active), name)
		if err := afero.WriteFile(f.Fs, path, content, 0644); err != nil {
			f.T.Fatalf("failed to write save file: %v", err)
		}
	}
}

// WriteDefaultSave writes every member of the default FileSet with distinct content
func (f *SaveFixture) WriteDefaultSave(tag string) map[string][]byte {
	f.T.Helper()

	files := make(map[string][]byte, len(models.DefaultFileSet))
	for _, name := range models.DefaultFileSet {
		files[name] = []byte(tag + ":" + name)
	}
	f.WriteSave(files)
	return files
}

// Touch sets the modification time of the primary save file
func (f *SaveFixture) Touch(mtime time.Time) {
	f.T.Helper()
	path := filepath.Join(models.ActiveSaveDir(f.Active), models.DefaultFileSet[0])
	if err := f.Fs.Chtimes(path, mtime, mtime); err != nil {
		f.T.Fatalf("failed to set mtime: %v", err)
	}
}

// ReadSave returns the content of an active save file
func (f *SaveFixture) ReadSave(name string) []byte {
	f.T.Helper()
	content, err := afero.ReadFile(f.Fs, filepath.Join(models.ActiveSaveDir(f.Active), name))
	if err != nil {
		f.T.Fatalf("failed to read save file: %v", err)
	}
	return content
}

// ReadSnapshot returns the content of a file inside a snapshot
func (f *SaveFixture) ReadSnapshot(snapshot, name string) []byte {
	f.T.Helper()
	content, err := afero.ReadFile(f.Fs, filepath.Join(f.Backup, snapshot, name))
	if err != nil {
		f.T.Fatalf("failed to read snapshot file: %v", err)
	}
	return content
}

// RemoveSave deletes an active save file
func (f *SaveFixture) RemoveSave(name string) {
	f.T.Helper()
	if err := f.Fs.Remove(filepath.Join(models.ActiveSaveDir(f.Active), name)); err != nil {
		f.T.Fatalf("failed to remove save file: %v", err)
	}
}

// MakeSnapshotDir creates an empty snapshot directory by hand
func (f *SaveFixture) MakeSnapshotDir(name string) {
	f.T.Helper()
	if err := f.Fs.MkdirAll(filepath.Join(f.Backup, name), 0755); err != nil {
		f.T.Fatalf("failed to create snapshot directory: %v", err)
	}
}

// SnapshotDirs returns the directory names under the backup root, in filesystem order
func (f *SaveFixture) SnapshotDirs() []string {
	f.T.Helper()
	entries, err := afero.ReadDir(f.Fs, f.Backup)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		f.T.Fatalf("failed to read backup root: %v", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}
