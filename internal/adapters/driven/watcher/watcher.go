// Package watcher triggers regeneration when summary documents or the
// display configuration change on disk. It uses github.com/fsnotify/fsnotify
// and coalesces bursts of events (editors often write several times per save)
// into a single callback.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/chatdigest/internal/logger"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 500 * time.Millisecond

// File suffixes that never trigger a rebuild.
var ignoreSuffixes = []string{".swp", ".swx", ".tmp", "~", ".DS_Store"}

// Watcher reports changes to markdown files in watched directories and to
// individually watched files.
type Watcher struct {
	fw       *fsnotify.Watcher
	interval time.Duration

	// dirs report any *.md change; files report changes to exactly that path.
	dirs  map[string]bool
	files map[string]bool

	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher. A non-positive interval uses DefaultDebounce.
func NewWatcher(interval time.Duration) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		interval: interval,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
		done:     make(chan struct{}),
	}, nil
}

// Watch starts monitoring paths. A directory reports changes to the markdown
// files inside it; a file reports its own changes and may not exist yet, in
// which case its parent directory must. onChange receives the sorted, distinct
// set of paths changed during one burst and is never called concurrently.
func (w *Watcher) Watch(paths []string, onChange func(changed []string)) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}

		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			w.dirs[abs] = true
			if err := w.fw.Add(abs); err != nil {
				return err
			}
		case err == nil || errors.Is(err, os.ErrNotExist):
			w.files[abs] = true
			if err := w.fw.Add(filepath.Dir(abs)); err != nil {
				return err
			}
		default:
			return err
		}
	}

	events := make(chan string)
	go w.debounce(events, onChange)

	go func() {
		defer close(events)
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if !w.relevant(event.Name) {
					continue
				}
				select {
				case events <- event.Name:
				case <-w.done:
					return
				}

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				logger.Debug("watcher: %v", err)

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// debounce batches paths until the watcher has been quiet for the interval.
func (w *Watcher) debounce(events <-chan string, onChange func([]string)) {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case path, ok := <-events:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return
			}
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(w.interval)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.interval)
			}
			fire = timer.C

		case <-fire:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			fire = nil
			onChange(changed)
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	if w.files[path] {
		return true
	}
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.dirs[filepath.Dir(path)] && strings.HasSuffix(base, ".md")
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
