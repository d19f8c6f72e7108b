// Package watcher polls the spec directory for fingerprint changes and
// triggers a cache-disabled refresh, with fsnotify wired in as a
// best-effort fast path that shortens the next poll instead of
// replacing it.
package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/antflydb/catalog/internal/model"
	"github.com/antflydb/catalog/internal/specs"
)

// DefaultInterval is OPENAPI_WATCH_INTERVAL's default, in seconds.
const DefaultInterval = 2 * time.Second

// Watcher polls specDir for fingerprint changes on Interval, invoking
// OnChange with cache disabled whenever the corpus differs from the last
// observed snapshot.
type Watcher struct {
	SpecDir  string
	Interval time.Duration
	OnChange func()
	Logger   *zap.Logger

	fsWatcher *fsnotify.Watcher // best-effort; nil if unavailable
	wake      chan struct{}

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	last []model.SpecFingerprint
}

// New builds a Watcher. logger may be nil, in which case a no-op logger
// is used.
func New(specDir string, interval time.Duration, onChange func(), logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		SpecDir:  specDir,
		Interval: interval,
		OnChange: onChange,
		Logger:   logger,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start takes the initial fingerprint snapshot and begins the polling
// loop in a background goroutine. fsnotify setup failures are logged and
// ignored: polling alone is sufficient on its own.
func (w *Watcher) Start() error {
	last, err := specs.Fingerprint(w.SpecDir)
	if err != nil {
		return err
	}
	w.last = last

	if fsw, err := fsnotify.NewWatcher(); err == nil {
		if addErr := fsw.Add(w.SpecDir); addErr == nil {
			w.fsWatcher = fsw
			w.wg.Add(1)
			go w.watchFS()
		} else {
			w.Logger.Warn("fsnotify add failed, falling back to polling only", zap.Error(addErr))
			_ = fsw.Close()
		}
	} else {
		w.Logger.Warn("fsnotify unavailable, falling back to polling only", zap.Error(err))
	}

	w.wg.Add(1)
	go w.pollLoop()
	return nil
}

// Stop terminates both goroutines and waits for them to exit. Safe to
// call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
	if w.fsWatcher != nil {
		_ = w.fsWatcher.Close()
	}
}

func (w *Watcher) pollLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		case <-w.wake:
			// fsnotify observed an fs event: check immediately instead of
			// waiting out the rest of the poll interval.
			w.check()
			ticker.Reset(w.Interval)
		}
	}
}

func (w *Watcher) watchFS() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case _, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			select {
			case w.wake <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.Logger.Warn("fsnotify error", zap.Error(err))
		}
	}
}

func (w *Watcher) check() {
	current, err := specs.Fingerprint(w.SpecDir)
	if err != nil {
		w.Logger.Warn("fingerprint spec dir failed", zap.Error(err))
		return
	}
	if model.FingerprintsEqual(current, w.last) {
		return
	}
	w.last = current
	if w.OnChange != nil {
		w.OnChange()
	}
}
