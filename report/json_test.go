// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/idiomaticjs/stylecheck/lint"
)

func TestJSONReporter(t *testing.T) {
	summary := NewSummary(sampleResults(), 42*time.Millisecond)

	var buf bytes.Buffer
	if err := NewJSONReporter().Report(&buf, summary); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var doc struct {
		RunID string `json:"runId"`
		Files []struct {
			FilePath string `json:"filePath"`
			Messages []struct {
				RuleID   string `json:"ruleId"`
				Severity int    `json:"severity"`
				Line     int    `json:"line"`
				Column   int    `json:"column"`
				Message  string `json:"message"`
			} `json:"messages"`
			ErrorCount   int `json:"errorCount"`
			WarningCount int `json:"warningCount"`
		} `json:"files"`
		ErrorCount   int   `json:"errorCount"`
		WarningCount int   `json:"warningCount"`
		DurationMs   int64 `json:"durationMs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if doc.RunID == "" {
		t.Error("runId is empty")
	}
	if doc.ErrorCount != 1 || doc.WarningCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", doc.ErrorCount, doc.WarningCount)
	}
	if doc.DurationMs != 42 {
		t.Errorf("durationMs = %d, want 42", doc.DurationMs)
	}
	if len(doc.Files) != 2 {
		t.Fatalf("file count = %d, want 2", len(doc.Files))
	}

	app := doc.Files[0]
	if app.FilePath != "src/app.js" {
		t.Errorf("filePath = %q, want src/app.js", app.FilePath)
	}
	if len(app.Messages) != 2 {
		t.Fatalf("message count = %d, want 2", len(app.Messages))
	}
	if app.Messages[0].RuleID != "semi" || app.Messages[0].Severity != 2 {
		t.Errorf("first message = %+v, want semi with severity 2", app.Messages[0])
	}
	if app.Messages[1].RuleID != "quotes" || app.Messages[1].Severity != 1 {
		t.Errorf("second message = %+v, want quotes with severity 1", app.Messages[1])
	}

	clean := doc.Files[1]
	if len(clean.Messages) != 0 {
		t.Errorf("clean file has %d messages", len(clean.Messages))
	}
}

func TestSeverityCode(t *testing.T) {
	tests := []struct {
		severity lint.Severity
		want     int
	}{
		{lint.SeverityError, 2},
		{lint.SeverityWarning, 1},
		{lint.SeverityInfo, 1},
	}

	for _, tt := range tests {
		if got := severityCode(tt.severity); got != tt.want {
			t.Errorf("severityCode(%v) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}
