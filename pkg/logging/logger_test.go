// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(42), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("toSlogLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_StderrOnly(t *testing.T) {
	logger := New(Config{Level: LevelInfo, Service: "test"})
	defer logger.Close()

	if logger.slog == nil {
		t.Fatal("logger has no slog backend")
	}
	if logger.file != nil {
		t.Error("file handle opened without LogDir")
	}
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "filetest",
		Quiet:   true,
	})
	logger.Info("check completed", "files", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	wantName := "filetest_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	// File output is JSON with the service attribute stamped on.
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "check completed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "check completed")
	}
	if entry["service"] != "filetest" {
		t.Errorf("service = %v, want filetest", entry["service"])
	}
	if entry["files"] != float64(3) {
		t.Errorf("files = %v, want 3", entry["files"])
	}
}

func TestNew_FileLoggingCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger := New(Config{LogDir: dir, Service: "mk", Quiet: true})
	logger.Info("hello")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log file count = %d, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "mk_") {
		t.Errorf("log file name = %q, want mk_ prefix", entries[0].Name())
	}
}

func TestNew_LevelFilter(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter",
		Quiet:   true,
	})
	logger.Debug("dropped debug")
	logger.Info("dropped info")
	logger.Warn("kept warn")
	logger.Error("kept error")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := readOnlyLogFile(t, dir)
	if strings.Contains(data, "dropped") {
		t.Errorf("below-threshold messages written: %q", data)
	}
	if !strings.Contains(data, "kept warn") || !strings.Contains(data, "kept error") {
		t.Errorf("at-threshold messages missing: %q", data)
	}
}

func TestNew_BadLogDirDegradesToStderr(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	logger := New(Config{LogDir: blocker, Service: "bad"})
	defer logger.Close()

	if logger.file != nil {
		t.Error("file handle opened under an unusable LogDir")
	}
	// Logging must not panic.
	logger.Info("still works")
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Service: "parent", Quiet: true})
	child := logger.With("file", "src/app.js")
	child.Info("scanning")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := readOnlyLogFile(t, dir)
	if !strings.Contains(data, "src/app.js") {
		t.Errorf("child attribute missing from output: %q", data)
	}

	// The child shares the parent's file handle.
	if child.file != logger.file {
		t.Error("With() did not share the log file handle")
	}
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	logger := New(Config{Quiet: true})
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on stderr-only logger = %v", err)
	}
}

func TestLogger_Slog(t *testing.T) {
	logger := New(Config{Quiet: true})
	defer logger.Close()

	if logger.Slog() == nil {
		t.Error("Slog() returned nil")
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	defer logger.Close()

	if logger.file != nil {
		t.Error("Default() opened a log file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"~/.stylecheck/logs", filepath.Join(home, ".stylecheck/logs")},
		{"/var/log/stylecheck", "/var/log/stylecheck"},
		{"relative/logs", "relative/logs"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandPath(tt.path); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// readOnlyLogFile reads the single log file New wrote into dir.
func readOnlyLogFile(t *testing.T, dir string) string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading log dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log file count = %d, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	return string(data)
}
