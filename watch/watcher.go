// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/idiomaticjs/stylecheck/lint"
)

// =============== TYPES ===============

// Change represents a file system change event for a JavaScript source file.
type Change struct {
	// Path is the path to the changed file.
	Path string

	// Op is the type of change.
	Op Op

	// Time is when the change was detected.
	Time time.Time
}

// Op represents the type of file operation.
type Op int

const (
	// OpCreate indicates a file was created.
	OpCreate Op = iota

	// OpWrite indicates a file was modified.
	OpWrite

	// OpRemove indicates a file was deleted.
	OpRemove

	// OpRename indicates a file was renamed.
	OpRename
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a debounced batch of changes is ready.
type Handler func(changes []Change)

// Watcher watches a directory tree for JavaScript file changes.
//
// # Description
//
// Watches a directory recursively and batches changes using a debounce
// window. This prevents re-linting on every keystroke while a file is
// being actively edited. Only files accepted by lint.IsJSFile produce
// change events; removals of watched files are reported so callers can
// drop stale results.
//
// # Debouncing
//
// Changes are collected into a buffer. When the debounce period expires
// without new changes, the collected changes are deduplicated and sent
// to the handler. A token-bucket rate limiter additionally caps batch
// dispatch frequency, so a storm of saves cannot trigger unbounded
// re-lint churn.
//
// # Thread Safety
//
// Safe for concurrent use. The handler is called from a single goroutine.
type Watcher struct {
	root           string
	watcher        *fsnotify.Watcher
	handler        Handler
	debounce       time.Duration
	ignorePatterns []string
	limiter        *rate.Limiter

	changes  chan Change
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

// Options configures the Watcher.
type Options struct {
	// DebounceWindow is how long to wait for more changes before dispatching.
	// Default: 200ms
	DebounceWindow time.Duration

	// IgnorePatterns are glob patterns for files/directories to ignore.
	// Default: [".git", "node_modules", "vendor", "dist", "*.swp", "*.tmp"]
	IgnorePatterns []string

	// BufferSize is the size of the change buffer channel.
	// Default: 1000
	BufferSize int

	// MaxBatchesPerSecond caps how often change batches are dispatched.
	// Default: 4
	MaxBatchesPerSecond float64
}

// DefaultOptions returns sensible defaults for interactive editing.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:      200 * time.Millisecond,
		IgnorePatterns:      []string{".git", "node_modules", "vendor", "dist", "*.swp", "*.tmp"},
		BufferSize:          1000,
		MaxBatchesPerSecond: 4,
	}
}

// =============== CONSTRUCTION ===============

// New creates a watcher for the given root directory.
//
// # Inputs
//
//   - root: Path to the directory to watch.
//   - handler: Function called with batched changes after debounce.
//   - opts: Optional configuration (nil uses defaults).
//
// # Outputs
//
//   - *Watcher: Ready-to-use watcher (call Start to begin watching).
//   - error: Non-nil if the underlying watcher could not be created.
//
// # Example
//
//	w, err := watch.New("src", func(changes []watch.Change) {
//	    for _, c := range changes {
//	        relint(c.Path)
//	    }
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
func New(root string, handler Handler, opts *Options) (*Watcher, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		root:           root,
		watcher:        watcher,
		handler:        handler,
		debounce:       opts.DebounceWindow,
		ignorePatterns: opts.IgnorePatterns,
		limiter:        rate.NewLimiter(rate.Limit(opts.MaxBatchesPerSecond), 1),
		changes:        make(chan Change, opts.BufferSize),
		done:           make(chan struct{}),
	}, nil
}

// =============== LIFECYCLE ===============

// Start begins watching for file changes.
//
// # Description
//
// Recursively watches the root directory and all subdirectories.
// Changes are debounced and sent to the handler in batches. Spawns
// two goroutines: an event processor that converts fsnotify events
// to Change values, and a debouncer that batches them. Both exit
// when Stop is called or the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil // Already watching
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching returns true if the watcher is currently active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

// =============== INTERNAL ===============

// addRecursive adds a directory and all subdirectories to the watch list.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Ignore errors, continue walking
		}

		if !d.IsDir() {
			return nil
		}

		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

// shouldIgnore checks if a path matches any ignore pattern.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range w.ignorePatterns {
		if base == pattern {
			return true
		}

		matched, _ := filepath.Match(pattern, base)
		if matched {
			return true
		}

		// Pattern anywhere in the path catches nested ignored directories.
		if strings.Contains(path, string(filepath.Separator)+pattern+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// relevant reports whether an event path should produce a change.
// Directories are never relevant as changes, but new ones get watched.
func (w *Watcher) relevant(path string) bool {
	return lint.IsJSFile(path)
}

// processEvents converts fsnotify events to Change values and feeds the
// debounce channel.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if w.shouldIgnore(event.Name) {
				continue
			}

			// New directories must be added to the watch list before
			// filtering, or files created inside them are missed.
			if event.Has(fsnotify.Create) {
				if isDir, err := statIsDir(event.Name); err == nil && isDir {
					w.watcher.Add(event.Name)
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			change := Change{
				Path: event.Name,
				Time: time.Now(),
				Op:   convertOp(event.Op),
			}

			// Non-blocking send; the debouncer normally keeps up, and a
			// dropped event is recovered by the next save.
			select {
			case w.changes <- change:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logError(err)
		}
	}
}

// logError surfaces watcher failures that would otherwise be silent.
func (w *Watcher) logError(err error) {
	slog.Warn("watch error",
		slog.String("root", w.root),
		slog.String("error", err.Error()),
	)
}

// debounceLoop batches changes and calls the handler after the debounce
// window expires without further activity.
func (w *Watcher) debounceLoop(ctx context.Context) {
	var batch []Change
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			deduped := deduplicate(batch)
			if len(deduped) > 0 && w.handler != nil {
				w.handler(deduped)
			}
			batch = batch[:0]
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case change := <-w.changes:
			batch = append(batch, change)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			// Debounce window expired. The limiter caps dispatch
			// frequency under sustained save storms.
			if err := w.limiter.Wait(ctx); err != nil {
				flush()
				return
			}
			flush()
		}
	}
}

// deduplicate keeps the most recent change per path, preserving the
// order of first appearance.
func deduplicate(changes []Change) []Change {
	seen := make(map[string]int)
	result := make([]Change, 0, len(changes))

	for _, change := range changes {
		if idx, exists := seen[change.Path]; exists {
			result[idx] = change
			continue
		}
		seen[change.Path] = len(result)
		result = append(result, change)
	}

	return result
}

// convertOp converts fsnotify.Op to Op.
func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

// statIsDir returns true if path is a directory.
func statIsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
