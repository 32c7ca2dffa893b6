// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for check operations.
var (
	tracer = otel.Tracer("stylecheck.lint")
	meter  = otel.Meter("stylecheck.lint")
)

// Metrics for check operations.
var (
	checkLatency  metric.Float64Histogram
	checkTotal    metric.Int64Counter
	issuesFound   metric.Int64Histogram
	errorsFound   metric.Int64Counter
	warningsFound metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		checkLatency, err = meter.Float64Histogram(
			"stylecheck_check_duration_seconds",
			metric.WithDescription("Duration of style check operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		checkTotal, err = meter.Int64Counter(
			"stylecheck_checks_total",
			metric.WithDescription("Total number of style check operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		issuesFound, err = meter.Int64Histogram(
			"stylecheck_issues_found",
			metric.WithDescription("Number of issues found per check operation"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		errorsFound, err = meter.Int64Counter(
			"stylecheck_errors_found_total",
			metric.WithDescription("Total number of blocking issues found"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		warningsFound, err = meter.Int64Counter(
			"stylecheck_warnings_found_total",
			metric.WithDescription("Total number of warnings found"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startCheckSpan creates a span for a check operation.
func startCheckSpan(ctx context.Context, filePath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Engine.Check",
		trace.WithAttributes(
			attribute.String("check.file_path", filePath),
		),
	)
}

// setCheckSpanResult sets the result attributes on a check span.
func setCheckSpanResult(span trace.Span, errorCount, warningCount int, syntaxErrors bool) {
	span.SetAttributes(
		attribute.Int("check.error_count", errorCount),
		attribute.Int("check.warning_count", warningCount),
		attribute.Bool("check.syntax_errors", syntaxErrors),
	)
}

// recordCheckMetrics records metrics for a check operation.
func recordCheckMetrics(ctx context.Context, duration time.Duration, errorCount, warningCount int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
	)

	checkLatency.Record(ctx, duration.Seconds(), attrs)
	checkTotal.Add(ctx, 1, attrs)

	if success {
		issuesFound.Record(ctx, int64(errorCount+warningCount))
		errorsFound.Add(ctx, int64(errorCount))
		warningsFound.Add(ctx, int64(warningCount))
	}
}
