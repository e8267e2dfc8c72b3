// Package watch rebuilds the catalog cache when search path directories
// change.
//
// Each directory is watched non-recursively, since the scanner never descends
// into subdirectories. Bursts of events (a package manager installing dozens
// of binaries) are coalesced into a single callback after a quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

var ErrAlreadyRunning = errors.New("watch: Run called more than once")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the directories to watch. Directories that cannot be
		// watched are logged and skipped.
		Dirs []string

		Debounce time.Duration

		// OnChange receives the directories that changed since the last
		// call. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		Logger *log.Logger
	}

	// Watcher fires a debounced callback when a watched directory changes.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		logger   *log.Logger
		debounce time.Duration
		watched  []string
		started  atomic.Bool
	}
)

// New registers cfg.Dirs with fsnotify.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   logger,
		debounce: debounce,
	}
	for _, dir := range cfg.Dirs {
		dir = filepath.Clean(dir)
		if slices.Contains(w.watched, dir) {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			if isFatal(err) {
				fsw.Close()
				return nil, fmt.Errorf("watch: add %s: %w", dir, err)
			}
			logger.Warn("not watching directory", "dir", dir, "err", err)
			continue
		}
		w.watched = append(w.watched, dir)
	}
	return w, nil
}

// Watched returns the directories that were successfully registered.
func (w *Watcher) Watched() []string {
	return slices.Clone(w.watched)
}

// Run processes events until ctx is cancelled. It waits for a running
// OnChange to finish, closes the watcher on return and may only be called
// once.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		stopped bool
		running atomic.Bool
	)
	// inflight counts fire callbacks; Run waits for them before returning.
	var inflight sync.WaitGroup

	fire := func() {
		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		inflight.Add(1)
		mu.Unlock()
		defer inflight.Done()

		if ctx.Err() != nil {
			return
		}
		// A rebuild slower than the debounce period must not overlap the
		// next one; retry once it is done.
		if !running.CompareAndSwap(false, true) {
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.logger.Debug("search path changed", "dirs", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("closing fsnotify watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			dir := w.dirOf(evt.Name)

			mu.Lock()
			pending[dir] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// dirOf maps an event path back to the watched directory it belongs to.
func (w *Watcher) dirOf(name string) string {
	if slices.Contains(w.watched, name) {
		return name
	}
	return filepath.Dir(name)
}

// isFatal reports inotify resource exhaustion.
func isFatal(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
