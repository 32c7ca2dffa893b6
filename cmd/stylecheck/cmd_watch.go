// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idiomaticjs/stylecheck/report"
	"github.com/idiomaticjs/stylecheck/watch"
)

// runWatch re-checks JavaScript files as they change under a directory.
func runWatch(cmd *cobra.Command, args []string) {
	logger := newLogger("watch")
	defer logger.Close()

	root := args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Error("watch root must be a directory", "path", root)
		os.Exit(exitFailure)
	}

	cfg, err := loadConfig(root, logger)
	if err != nil {
		logger.Error("config load failed", "error", err.Error())
		os.Exit(exitFailure)
	}

	engine := buildEngine(cfg)
	opts := buildCheckOptions(cfg)
	reporter := buildReporter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(changes []watch.Change) {
		paths := make([]string, 0, len(changes))
		for _, change := range changes {
			if change.Op == watch.OpRemove {
				continue
			}
			paths = append(paths, change.Path)
		}
		if len(paths) == 0 {
			return
		}

		start := time.Now()
		results, err := engine.CheckFiles(ctx, paths, opts)
		if err != nil {
			logger.Error("re-check failed", "error", err.Error())
			return
		}

		summary := report.NewSummary(results, time.Since(start))
		if err := reporter.Report(os.Stdout, summary); err != nil {
			logger.Error("report failed", "error", err.Error())
		}
	}

	watchOpts := watch.DefaultOptions()
	if debounceMillis > 0 {
		watchOpts.DebounceWindow = time.Duration(debounceMillis) * time.Millisecond
	}

	watcher, err := watch.New(root, handler, &watchOpts)
	if err != nil {
		logger.Error("watcher setup failed", "error", err.Error())
		os.Exit(exitFailure)
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		logger.Error("watcher start failed", "error", err.Error())
		os.Exit(exitFailure)
	}

	// Initial pass over the tree so the first report doesn't wait
	// for a save.
	if results, err := engine.CheckDirectory(ctx, root, opts); err == nil {
		summary := report.NewSummary(results, 0)
		_ = reporter.Report(os.Stdout, summary)
	}

	logger.Info("watching", "root", root, "debounce_ms", watchOpts.DebounceWindow.Milliseconds())
	<-ctx.Done()
	logger.Info("watch stopped")
}
