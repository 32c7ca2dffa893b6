// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/idiomaticjs/stylecheck/lint"
)

// timeUnit is the rounding granularity for durations in the footer.
const timeUnit = time.Millisecond

// =============================================================================
// STYLES
// =============================================================================

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	fileStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// =============================================================================
// TEXT REPORTER
// =============================================================================

// TextOption configures a TextReporter.
type TextOption func(*TextReporter)

// WithColor forces color output on or off, overriding TTY detection.
func WithColor(enabled bool) TextOption {
	return func(r *TextReporter) {
		r.color = enabled
		r.colorSet = true
	}
}

// TextReporter renders a summary for human readers.
//
// Description:
//
//	Issues print one per line, grouped under their file, in the
//	familiar `line:col  severity  message  rule` shape with a totals
//	footer. Color is enabled when stdout is a terminal and the
//	NO_COLOR convention is not in effect.
//
// Thread Safety: Safe for concurrent use.
type TextReporter struct {
	color    bool
	colorSet bool
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts ...TextOption) *TextReporter {
	r := &TextReporter{}
	for _, opt := range opts {
		opt(r)
	}
	if !r.colorSet {
		r.color = isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""
	}
	return r
}

// Report writes the summary in human-readable form.
func (r *TextReporter) Report(w io.Writer, summary *Summary) error {
	for _, result := range summary.Results {
		issues := result.AllIssues()
		if len(issues) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s\n", r.styled(fileStyle, result.FilePath)); err != nil {
			return err
		}
		for _, issue := range issues {
			if err := r.writeIssue(w, issue); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return r.writeFooter(w, summary)
}

// writeIssue writes one issue line.
func (r *TextReporter) writeIssue(w io.Writer, issue lint.Issue) error {
	severity := issue.Severity.String()
	switch issue.Severity {
	case lint.SeverityError:
		severity = r.styled(errorStyle, severity)
	case lint.SeverityWarning:
		severity = r.styled(warningStyle, severity)
	default:
		severity = r.styled(infoStyle, severity)
	}

	_, err := fmt.Fprintf(w, "  %d:%d\t%s\t%s  %s\n",
		issue.Line, issue.Column, severity, issue.Message, r.styled(ruleStyle, issue.Rule))
	return err
}

// writeFooter writes the totals line.
func (r *TextReporter) writeFooter(w io.Writer, summary *Summary) error {
	if summary.Clean() {
		_, err := fmt.Fprintf(w, "%s (%d files, %s)\n",
			r.styled(cleanStyle, "clean"), summary.FileCount, summary.Duration.Round(timeUnit))
		return err
	}

	line := fmt.Sprintf("%d problems (%d errors, %d warnings, %d infos) in %d files",
		summary.IssueCount(), summary.ErrorCount, summary.WarningCount, summary.InfoCount, summary.FileCount)
	if summary.ErrorCount > 0 {
		line = r.styled(errorStyle, line)
	} else {
		line = r.styled(warningStyle, line)
	}
	_, err := fmt.Fprintf(w, "%s\n", line)
	return err
}

// styled applies a style when color is enabled.
func (r *TextReporter) styled(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Ensure TextReporter implements Reporter.
var _ Reporter = (*TextReporter)(nil)
