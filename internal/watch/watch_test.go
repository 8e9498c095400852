package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pders01/checkpoint/internal/config"
	"github.com/pders01/checkpoint/internal/models"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/pders01/checkpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSaver wraps a real session and counts save requests
type countingSaver struct {
	*session.Session

	mu     sync.Mutex
	saves  []session.SaveResult
	probes int
}

func (c *countingSaver) Probe() (time.Time, bool, error) {
	c.mu.Lock()
	c.probes++
	c.mu.Unlock()
	return c.Session.Probe()
}

func (c *countingSaver) probeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.probes
}

func (c *countingSaver) Save() (session.SaveResult, error) {
	res, err := c.Session.Save()
	c.mu.Lock()
	c.saves = append(c.saves, res)
	c.mu.Unlock()
	return res, err
}

func (c *countingSaver) results() []session.SaveResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]session.SaveResult(nil), c.saves...)
}

func newSaver(t *testing.T) (*countingSaver, *testutil.SaveFixture) {
	t.Helper()
	fx := testutil.NewOsSaveFixture(t)
	sess := session.New(fx.Fs, config.Locations{Active: fx.Active, Backup: fx.Backup}, nil)
	return &countingSaver{Session: sess}, fx
}

func runWatcher(t *testing.T, w *Watcher) (stop func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
			return nil
		}
	}
}

func TestRunRequiresTrigger(t *testing.T) {
	saver, _ := newSaver(t)
	err := New(saver, Config{}, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestRunInvalidSchedule(t *testing.T) {
	saver, _ := newSaver(t)
	err := New(saver, Config{Schedule: "not a schedule"}, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestScheduledSave(t *testing.T) {
	saver, fx := newSaver(t)
	fx.WriteDefaultSave("live")

	stop := runWatcher(t, New(saver, Config{Schedule: "@every 1s"}, nil))

	require.Eventually(t, func() bool {
		return len(fx.SnapshotDirs()) == 1
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, stop())
	for _, res := range saver.results() {
		assert.NotEqual(t, session.NothingToSave, res.Status)
	}
}

func TestSaveOnChange(t *testing.T) {
	saver, fx := newSaver(t)
	fx.WriteDefaultSave("before")
	fx.Touch(time.Date(2023, 1, 1, 10, 0, 0, 0, time.Local))

	stop := runWatcher(t, New(saver, Config{
		Fsnotify:  true,
		Debounce:  50 * time.Millisecond,
		Stability: 50 * time.Millisecond,
	}, nil))

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	fx.WriteDefaultSave("after")

	require.Eventually(t, func() bool {
		return len(fx.SnapshotDirs()) == 1
	}, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, stop())

	name := fx.SnapshotDirs()[0]
	assert.Equal(t, []byte("after:SaveProfile.sav"), fx.ReadSnapshot(name, "SaveProfile.sav"))
}

func TestWatchMissingDirectory(t *testing.T) {
	saver, fx := newSaver(t)
	require.NoError(t, os.RemoveAll(filepath.Join(fx.Active, "SaveGames")))

	err := New(saver, Config{Fsnotify: true, Debounce: time.Millisecond}, nil).Run(context.Background())
	assert.Error(t, err)
}

func TestRunRejectsZeroDebounce(t *testing.T) {
	saver, _ := newSaver(t)
	err := New(saver, Config{Fsnotify: true}, nil).Run(context.Background())
	assert.ErrorContains(t, err, "debounce")
}

func TestDeletedSaveStopsProbing(t *testing.T) {
	saver, fx := newSaver(t)
	fx.WriteDefaultSave("before")

	stop := runWatcher(t, New(saver, Config{
		Fsnotify:  true,
		Debounce:  5 * time.Millisecond,
		Stability: time.Millisecond,
	}, nil))

	time.Sleep(200 * time.Millisecond)
	fx.WriteDefaultSave("after")
	fx.RemoveSave(models.DefaultFileSet[0])

	// Let the pending settle timer fire, then expect no further probes.
	time.Sleep(300 * time.Millisecond)
	settled := saver.probeCount()
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, settled, saver.probeCount())

	require.NoError(t, stop())
}
