// Package watch reruns work when the data source or the journal changes
// on disk. It backs `ajar stock list --watch`.
package watch

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounceInterval is the default interval to wait after the last
// change before calling the change function.
const DefaultDebounceInterval = 100 * time.Millisecond

// ChangeFunc is called with the changed paths, sorted, once per settled
// burst of events. Calls never overlap.
type ChangeFunc func(paths []string) error

// Watcher monitors a set of files for changes.
//
// Files are watched through their parent directories so that atomic
// replacement (write to temp, rename over) is seen as well as in-place writes.
type Watcher struct {
	files            map[string]struct{}
	onChange         ChangeFunc
	log              *zap.Logger
	debounceInterval time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	started bool
}

// NewWatcher creates a watcher for paths. A debounce of zero uses
// DefaultDebounceInterval; log may be nil.
func NewWatcher(paths []string, onChange ChangeFunc, log *zap.Logger, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			files[abs] = struct{}{}
		}
	}

	return &Watcher{
		files:            files,
		onChange:         onChange,
		log:              log,
		debounceInterval: debounce,
		watcher:          fsWatcher,
		stopChan:         make(chan struct{}),
		doneChan:         make(chan struct{}),
	}, nil
}

// Start begins watching. Directories that cannot be watched are logged
// and skipped.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	dirs := make(map[string]struct{})
	for f := range w.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.log.Warn("Could not watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.log.Debug("Watching directory", zap.String("dir", dir))
	}

	w.started = true
	go w.processEvents()
	return nil
}

// Close stops the watcher and waits for a running change function to return.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.doneChan
		}
	})
}

// Files returns the watched file paths, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// processEvents handles filesystem events and the debounce timer.
func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path, ok := w.match(event)
			if !ok {
				continue
			}
			w.log.Debug("File change detected", zap.String("path", path), zap.String("op", event.Op.String()))
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounceInterval)
			} else {
				timer.Reset(w.debounceInterval)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			w.fire(paths)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("Watch error", zap.Error(err))
		}
	}
}

// match reports whether event touches a watched file with a content change.
func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	_, ok := w.files[path]
	return path, ok
}

func (w *Watcher) fire(paths []string) {
	if err := w.onChange(paths); err != nil {
		w.log.Error("Change handler failed", zap.Strings("paths", paths), zap.Error(err))
	}
}
