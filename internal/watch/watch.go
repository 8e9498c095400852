// Package watch saves snapshots in the background: when the primary save
// file changes and settles, and optionally on a cron schedule.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/pders01/checkpoint/internal/session"
	"github.com/robfig/cron/v3"
)

// Saver is the part of a session the watcher drives
type Saver interface {
	Probe() (time.Time, bool, error)
	Save() (session.SaveResult, error)
	PrimaryPath() string
}

// Config controls what triggers a save
type Config struct {
	// Fsnotify enables saving after the primary file changes
	Fsnotify bool
	// Debounce coalesces bursts of file events
	Debounce time.Duration
	// Stability is how long the primary file must stay unchanged before saving
	Stability time.Duration
	// Schedule is a cron expression for periodic saves; empty disables it
	Schedule string
}

// Watcher triggers saves on a single goroutine
type Watcher struct {
	saver Saver
	cfg   Config
	log   hclog.Logger
}

// New creates a watcher
func New(saver Saver, cfg Config, log hclog.Logger) *Watcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Watcher{saver: saver, cfg: cfg, log: log}
}

// Run blocks until ctx is cancelled. Every save happens on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.cfg.Fsnotify && w.cfg.Schedule == "" {
		return fmt.Errorf("nothing to watch: enable file events or set a schedule")
	}
	if w.cfg.Fsnotify && w.cfg.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", w.cfg.Debounce)
	}

	scheduled := make(chan struct{}, 1)
	if w.cfg.Schedule != "" {
		c := cron.New()
		_, err := c.AddFunc(w.cfg.Schedule, func() {
			select {
			case scheduled <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", w.cfg.Schedule, err)
		}
		c.Start()
		defer c.Stop()
		w.log.Info("scheduled saves enabled", "schedule", w.cfg.Schedule)
	}

	var events <-chan fsnotify.Event
	var errs <-chan error
	primary := w.saver.PrimaryPath()
	if w.cfg.Fsnotify {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer fw.Close()

		dir := filepath.Dir(primary)
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
		events, errs = fw.Events, fw.Errors
		w.log.Info("watching save file", "path", primary)
	}

	settle := time.NewTimer(w.cfg.Debounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("file events closed")
			}
			if filepath.Base(ev.Name) != filepath.Base(primary) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("save file changed", "op", ev.Op.String())
			settle.Reset(w.cfg.Debounce)

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("file events closed")
			}
			w.log.Error("file watcher error", "error", err)

		case <-settle.C:
			switch w.settled(ctx) {
			case saveStable:
				w.save("change")
			case saveChanging:
				w.log.Debug("save file still changing")
				settle.Reset(w.cfg.Debounce)
			case saveGone:
				// The next file event re-arms the timer.
				w.log.Debug("save file unavailable, waiting for changes", "path", primary)
			}

		case <-scheduled:
			w.save("schedule")
		}
	}
}

type settleState int

const (
	saveStable settleState = iota
	saveChanging
	saveGone
)

// settled reports whether the primary file kept its modification time over the stability window
func (w *Watcher) settled(ctx context.Context) settleState {
	before, ok, err := w.saver.Probe()
	if err != nil {
		w.log.Warn("cannot probe save file", "error", err)
		return saveGone
	}
	if !ok {
		return saveGone
	}

	select {
	case <-ctx.Done():
		return saveGone
	case <-time.After(w.cfg.Stability):
	}

	after, ok, err := w.saver.Probe()
	if err != nil {
		w.log.Warn("cannot probe save file", "error", err)
		return saveGone
	}
	if !ok {
		return saveGone
	}
	if !before.Equal(after) {
		return saveChanging
	}
	return saveStable
}

func (w *Watcher) save(trigger string) {
	res, err := w.saver.Save()
	if err != nil {
		w.log.Error("save failed", "trigger", trigger, "error", err)
		return
	}

	switch res.Status {
	case session.Saved:
		w.log.Info("snapshot created", "trigger", trigger, "snapshot", res.Name)
	case session.AlreadySaved:
		w.log.Debug("snapshot already exists", "trigger", trigger, "snapshot", res.Name)
	case session.NothingToSave:
		w.log.Debug("no active save", "trigger", trigger)
	}
}
