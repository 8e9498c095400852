// Package session ties the probe and the store to one pair of locations.
// It implements the save, list and restore operations offered to the
// command line and to the background watcher.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pders01/checkpoint/internal/config"
	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/probe"
	"github.com/pders01/checkpoint/internal/store"
	"github.com/spf13/afero"
)

// SaveStatus is the outcome of a save request
type SaveStatus int

const (
	// Saved means a new snapshot was materialized
	Saved SaveStatus = iota
	// AlreadySaved means a snapshot for the current active save already exists
	AlreadySaved
	// NothingToSave means the active location has no primary save file
	NothingToSave
)

func (s SaveStatus) String() string {
	switch s {
	case Saved:
		return "saved"
	case AlreadySaved:
		return "already-saved"
	case NothingToSave:
		return "nothing-to-save"
	default:
		return fmt.Sprintf("SaveStatus(%d)", int(s))
	}
}

// SaveResult describes a completed save request
type SaveResult struct {
	Status    SaveStatus
	Name      string
	Timestamp time.Time
}

// Session runs snapshot operations against one active location and backup root.
// Save and Restore are serialized so in-process callers never interleave copies.
type Session struct {
	mu    sync.Mutex
	locs  config.Locations
	store *store.Store
	probe *probe.Probe
}

// New creates a session. fileSet[0] is the primary file probed for the save time.
func New(fsys afero.Fs, locs config.Locations, fileSet []string) *Session {
	if len(fileSet) == 0 {
		fileSet = models.DefaultFileSet
	}
	return &Session{
		locs:  locs,
		store: store.New(fsys, fileSet),
		probe: probe.New(fsys, fileSet[0]),
	}
}

// Locations returns the directories the session operates on
func (s *Session) Locations() config.Locations {
	return s.locs
}

// PrimaryPath returns the path of the probed primary save file
func (s *Session) PrimaryPath() string {
	return s.probe.PrimaryPath(s.locs.Active)
}

// Probe reports the modification time of the active save
func (s *Session) Probe() (time.Time, bool, error) {
	return s.probe.Probe(s.locs.Active)
}

// Save snapshots the active save, named after its modification time.
// An absent save and an existing snapshot are reported through the status, not as errors.
func (s *Session) Save() (SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	modTime, ok, err := s.probe.Probe(s.locs.Active)
	if err != nil {
		return SaveResult{}, err
	}
	if !ok {
		return SaveResult{Status: NothingToSave}, nil
	}

	name, err := s.store.Create(s.locs.Backup, s.locs.Active, modTime)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return SaveResult{Status: AlreadySaved, Name: name, Timestamp: modTime}, nil
	case err != nil:
		return SaveResult{}, err
	}

	return SaveResult{Status: Saved, Name: name, Timestamp: modTime}, nil
}

// List returns snapshot names, most recent first
func (s *Session) List() ([]string, error) {
	return s.store.List(s.locs.Backup)
}

// Latest returns the most recent snapshot name
func (s *Session) Latest() (string, error) {
	return s.store.Latest(s.locs.Backup)
}

// Inspect describes one snapshot
func (s *Session) Inspect(name string) (models.Info, error) {
	return s.store.Inspect(s.locs.Backup, name)
}

// Restore overwrites the active save with the named snapshot
func (s *Session) Restore(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Restore(s.locs.Backup, name, s.locs.Active)
}
