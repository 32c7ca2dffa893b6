// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package watch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Op(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove, OpRemove},
		{fsnotify.Rename, OpRename},
		{fsnotify.Chmod, OpWrite},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertOp(tt.op), "convertOp(%v)", tt.op)
	}
}

func TestDeduplicate(t *testing.T) {
	base := time.Now()
	changes := []Change{
		{Path: "a.js", Op: OpCreate, Time: base},
		{Path: "b.js", Op: OpWrite, Time: base},
		{Path: "a.js", Op: OpWrite, Time: base.Add(time.Millisecond)},
	}

	deduped := deduplicate(changes)
	require.Len(t, deduped, 2)

	// First-appearance order, most recent change per path.
	assert.Equal(t, "a.js", deduped[0].Path)
	assert.Equal(t, OpWrite, deduped[0].Op)
	assert.Equal(t, "b.js", deduped[1].Path)
}

func TestShouldIgnore(t *testing.T) {
	w := &Watcher{ignorePatterns: DefaultOptions().IgnorePatterns}

	tests := []struct {
		path string
		want bool
	}{
		{"/project/src/app.js", false},
		{"/project/node_modules", true},
		{"/project/node_modules/dep/index.js", true},
		{"/project/.git", true},
		{"/project/src/.app.js.swp", true},
		{"/project/src/buffer.tmp", true},
		{"/project/vendor", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, w.shouldIgnore(tt.path), "shouldIgnore(%q)", tt.path)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 200*time.Millisecond, opts.DebounceWindow)
	assert.Equal(t, 1000, opts.BufferSize)
	assert.Equal(t, float64(4), opts.MaxBatchesPerSecond)
	assert.Contains(t, opts.IgnorePatterns, "node_modules")
}

func TestWatcher_LogError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	w := &Watcher{root: "/project"}
	w.logError(errors.New("inotify overflow"))

	out := buf.String()
	assert.Contains(t, out, "watch error")
	assert.Contains(t, out, "inotify overflow")
	assert.Contains(t, out, "/project")
}

func TestWatcher_StartStop(t *testing.T) {
	w, err := New(t.TempDir(), func(changes []Change) {}, nil)
	require.NoError(t, err)

	assert.False(t, w.IsWatching())

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	assert.True(t, w.IsWatching())

	// Second Start is a no-op.
	require.NoError(t, w.Start(ctx))

	w.Stop()
	assert.False(t, w.IsWatching())

	// Stop is idempotent.
	w.Stop()
}

func TestWatcher_DeliversBatchedChanges(t *testing.T) {
	dir := t.TempDir()
	got := make(chan []Change, 1)

	opts := DefaultOptions()
	opts.DebounceWindow = 50 * time.Millisecond
	opts.MaxBatchesPerSecond = 1000 // don't rate limit the test

	w, err := New(dir, func(changes []Change) {
		select {
		case got <- changes:
		default:
		}
	}, &opts)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// A JS file and a file the watcher must filter out.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("var a = 1;\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me\n"), 0644))

	select {
	case changes := <-got:
		require.NotEmpty(t, changes)
		for _, change := range changes {
			assert.Equal(t, "app.js", filepath.Base(change.Path))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no changes delivered within 5s")
	}
}
