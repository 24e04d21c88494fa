// Package watch reruns the pipeline when project signal files change.
//
// The watcher observes the workspace root (and the CI workflow directory)
// non-recursively. Events are debounced: a burst of saves produces a single
// callback once the burst has settled.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the settled, sorted root-relative paths that changed.
// It runs on the watcher goroutine; calls never overlap.
type ChangeFunc func(ctx context.Context, changed []string)

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Ignored       int
	Runs          int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher watches a workspace for signal changes.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	root        string
	ignore      *signals.Matcher
	extraIgnore []string
	onChange    ChangeFunc
	debounceDur time.Duration
	pending     map[string]time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// New creates a watcher for root. Paths matched by the defaults, the root
// .gitignore or extraIgnore never trigger a run. Nothing is observed until Start.
func New(root string, debounce time.Duration, extraIgnore []string, onChange ChangeFunc) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:     fw,
		root:        abs,
		ignore:      signals.LoadMatcher(abs, extraIgnore),
		extraIgnore: extraIgnore,
		onChange:    onChange,
		debounceDur: debounce,
		pending:     make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; events are handled on one
// background goroutine until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Watch("watching %s", w.root)

	workflows := filepath.Join(w.root, filepath.FromSlash(".github/workflows"))
	if info, err := os.Stat(workflows); err == nil && info.IsDir() {
		if err := w.watcher.Add(workflows); err == nil {
			logging.Watch("also watching %s", workflows)
		}
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logging.WatchWarn("error closing watcher: %v", err)
	}
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounceDur / 4
	if tick > 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	debounceTicker := time.NewTicker(tick)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchWarn("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = rel

	if rel == signals.IgnoreFile {
		w.ignore = signals.LoadMatcher(w.root, w.extraIgnore)
	}
	if !w.relevant(rel) {
		w.stats.Ignored++
		return
	}
	w.pending[rel] = time.Now()
}

// relevant filters out the reserved tree, temp files and ignored paths so
// the pipeline's own writes never retrigger it.
func (w *Watcher) relevant(rel string) bool {
	if rel == "." || rel == signals.ReservedDir || strings.HasPrefix(rel, signals.ReservedDir+"/") {
		return false
	}
	if strings.HasSuffix(rel, ".tmp") || strings.HasSuffix(rel, "~") {
		return false
	}
	return !w.ignore.Ignored(rel, filepath.Base(rel))
}

// flush fires the callback once every pending path has settled.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	for _, t := range w.pending {
		if now.Sub(t) < w.debounceDur {
			w.mu.Unlock()
			return
		}
	}
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]time.Time)
	w.stats.Runs++
	w.mu.Unlock()

	sort.Strings(changed)
	logging.Watch("change settled: %s", strings.Join(changed, ", "))
	if w.onChange != nil {
		w.onChange(ctx, changed)
	}
}
