package session

import (
	"testing"
	"time"

	"github.com/pders01/checkpoint/internal/config"
	"github.com/pders01/checkpoint/internal/store"
	"github.com/pders01/checkpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, *testutil.SaveFixture) {
	t.Helper()
	fx := testutil.NewSaveFixture(t)
	return New(fx.Fs, config.Locations{Active: fx.Active, Backup: fx.Backup}, nil), fx
}

func TestSaveNothingToSave(t *testing.T) {
	s, fx := newSession(t)

	res, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, NothingToSave, res.Status)
	assert.Empty(t, fx.SnapshotDirs())
}

func TestSaveThenAlreadySaved(t *testing.T) {
	s, fx := newSession(t)
	fx.WriteDefaultSave("live")
	fx.Touch(time.Date(2023, 6, 1, 9, 0, 0, 0, time.Local))

	res, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, Saved, res.Status)
	assert.Equal(t, "save_2023-06-01_09-00-00", res.Name)

	res, err = s.Save()
	require.NoError(t, err)
	assert.Equal(t, AlreadySaved, res.Status)
	assert.Equal(t, "save_2023-06-01_09-00-00", res.Name)
	assert.Len(t, fx.SnapshotDirs(), 1)
}

func TestSaveListRestore(t *testing.T) {
	s, fx := newSession(t)

	first := fx.WriteDefaultSave("first")
	fx.Touch(time.Date(2023, 1, 1, 10, 0, 0, 0, time.Local))
	res1, err := s.Save()
	require.NoError(t, err)

	fx.WriteDefaultSave("second")
	fx.Touch(time.Date(2023, 1, 2, 10, 0, 0, 0, time.Local))
	res2, err := s.Save()
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{res2.Name, res1.Name}, names)

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, res2.Name, latest)

	require.NoError(t, s.Restore(res1.Name))
	for file, content := range first {
		assert.Equal(t, content, fx.ReadSave(file))
	}
}

func TestRestoreUnknown(t *testing.T) {
	s, _ := newSession(t)
	assert.ErrorIs(t, s.Restore("save_2000-01-01_00-00-00"), store.ErrNotFound)
}

func TestSaveStatusString(t *testing.T) {
	assert.Equal(t, "saved", Saved.String())
	assert.Equal(t, "already-saved", AlreadySaved.String())
	assert.Equal(t, "nothing-to-save", NothingToSave.String())
}
