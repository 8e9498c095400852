package cmd

import (
	"testing"
	"time"

	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreCommand(t *testing.T) {
	fx := setupTestEnv(t)
	restoreDryRun = false

	name := createTestSnapshot(t, fx, "old", time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))
	createTestSnapshot(t, fx, "new", time.Date(2025, 1, 2, 12, 0, 0, 0, time.Local))

	require.NoError(t, runRestore(nil, []string{name}))
	for _, file := range models.DefaultFileSet {
		assert.Equal(t, []byte("old:"+file), fx.ReadSave(file))
	}
}

func TestRestoreDefaultsToLatest(t *testing.T) {
	fx := setupTestEnv(t)
	restoreDryRun = false

	createTestSnapshot(t, fx, "old", time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))
	createTestSnapshot(t, fx, "new", time.Date(2025, 1, 2, 12, 0, 0, 0, time.Local))
	fx.WriteDefaultSave("current")

	require.NoError(t, runRestore(nil, []string{}))
	assert.Equal(t, []byte("new:SaveProfile.sav"), fx.ReadSave("SaveProfile.sav"))
}

func TestRestoreNotFound(t *testing.T) {
	fx := setupTestEnv(t)
	restoreDryRun = false
	fx.WriteDefaultSave("current")

	err := runRestore(nil, []string{"save_1999-01-01_00-00-00"})
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, exitNotFound, exitCode(err))
	assert.Equal(t, []byte("current:SaveProfile.sav"), fx.ReadSave("SaveProfile.sav"))
}

func TestRestoreNothingToRestore(t *testing.T) {
	setupTestEnv(t)
	restoreDryRun = false

	err := runRestore(nil, []string{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRestoreDryRun(t *testing.T) {
	fx := setupTestEnv(t)
	name := createTestSnapshot(t, fx, "old", time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))
	fx.WriteDefaultSave("current")

	restoreDryRun = true
	defer func() { restoreDryRun = false }()

	require.NoError(t, runRestore(nil, []string{name}))
	assert.Equal(t, []byte("current:SaveProfile.sav"), fx.ReadSave("SaveProfile.sav"))
}
