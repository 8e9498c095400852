package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pders01/checkpoint/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIdentical(t *testing.T) {
	fx := setupTestEnv(t)
	name := createTestSnapshot(t, fx, "same", time.Date(2025, 2, 1, 8, 0, 0, 0, time.Local))

	diff, err := compareWithActive(newSession(), name)
	require.NoError(t, err)
	assert.True(t, diff.Identical)
	for _, f := range diff.Files {
		assert.Equal(t, diffIdentical, f.State)
	}

	require.NoError(t, runDiff(nil, []string{name}))
}

func TestDiffChangedAndMissing(t *testing.T) {
	fx := setupTestEnv(t)
	name := createTestSnapshot(t, fx, "old", time.Date(2025, 2, 1, 8, 0, 0, 0, time.Local))

	fx.WriteSave(map[string][]byte{"SaveProfile.sav": []byte("progress made")})
	fx.RemoveSave("SaveProfile.susres.sav")
	require.NoError(t, fx.Fs.Remove(filepath.Join(fx.Backup, name, "SaveProfile.susresvalid.sav")))

	diff, err := compareWithActive(newSession(), name)
	require.NoError(t, err)
	assert.False(t, diff.Identical)

	states := map[string]string{}
	for _, f := range diff.Files {
		states[f.Name] = f.State
	}
	assert.Equal(t, map[string]string{
		"SaveProfile.sav":             diffChanged,
		"SaveProfile.susres.sav":      diffMissingActive,
		"SaveProfile.susresvalid.sav": diffMissingSnapshot,
	}, states)
}

func TestDiffNotFound(t *testing.T) {
	setupTestEnv(t)

	err := runDiff(nil, []string{"save_1999-01-01_00-00-00"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
