// Package watcher reports debounced changes to matching files in a directory.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher watches one directory and calls back with the full set of
// matching files once changes have settled.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	exts     []string
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func([]string)
	onError  func(error)
	done     chan struct{}
}

// NewDirWatcher watches dir for files whose extension (case-insensitive) is
// in exts. An empty exts matches every file.
func NewDirWatcher(dir string, debounce time.Duration, exts ...string) (*DirWatcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(abs); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	lower := make([]string, len(exts))
	for i, e := range exts {
		lower[i] = strings.ToLower(e)
	}
	return &DirWatcher{
		watcher:  w,
		dir:      abs,
		exts:     lower,
		debounce: debounce,
		onError:  func(error) {},
		done:     make(chan struct{}),
	}, nil
}

// OnError sets the handler for watcher errors.
func (dw *DirWatcher) OnError(fn func(error)) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.onError = fn
}

// Matches reports whether name passes the extension filter.
func (dw *DirWatcher) Matches(name string) bool {
	if len(dw.exts) == 0 {
		return true
	}
	return slices.Contains(dw.exts, strings.ToLower(filepath.Ext(name)))
}

// Scan lists the matching files currently in the directory, sorted.
func (dw *DirWatcher) Scan() ([]string, error) {
	entries, err := os.ReadDir(dw.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && dw.Matches(e.Name()) {
			out = append(out, filepath.Join(dw.dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Start begins delivering change batches to callback.
func (dw *DirWatcher) Start(callback func([]string)) {
	dw.mu.Lock()
	dw.callback = callback
	dw.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-dw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 &&
					dw.Matches(event.Name) {
					dw.handleChange()
				}

			case err, ok := <-dw.watcher.Errors:
				if !ok {
					return
				}
				dw.mu.Lock()
				fn := dw.onError
				dw.mu.Unlock()
				fn(err)
			}
		}
	}()
}

// handleChange restarts the debounce timer.
func (dw *DirWatcher) handleChange() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	select {
	case <-dw.done:
		return
	default:
	}

	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(dw.debounce, dw.fire)
}

func (dw *DirWatcher) fire() {
	dw.mu.Lock()
	cb, onErr := dw.callback, dw.onError
	select {
	case <-dw.done:
		dw.mu.Unlock()
		return
	default:
	}
	dw.mu.Unlock()

	files, err := dw.Scan()
	if err != nil {
		onErr(err)
		return
	}
	cb(files)
}

// Close stops the watcher. Pending batches are dropped.
func (dw *DirWatcher) Close() error {
	dw.mu.Lock()
	select {
	case <-dw.done:
		dw.mu.Unlock()
		return nil
	default:
	}
	close(dw.done)
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.mu.Unlock()
	return dw.watcher.Close()
}
