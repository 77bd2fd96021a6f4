package ui

import (
	"fmt"
	"io"

	"batchtest/internal/domain"
)

// Viewer displays the failures of a saved run
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}

// PlainViewer prints failures without an interactive terminal.
type PlainViewer struct {
	out       io.Writer
	formatter *Formatter
	// ShowResolved includes failures already marked resolved.
	ShowResolved bool
}

// NewPlainViewer creates a PlainViewer writing to out
func NewPlainViewer(out io.Writer) *PlainViewer {
	return &PlainViewer{out: out, formatter: NewFormatter(out)}
}

// View implements Viewer.
func (v *PlainViewer) View(results *domain.TestResultsOutput) error {
	failures := make([]domain.TestFailure, 0, len(results.Details))
	for _, failure := range results.Details {
		if failure.Resolved && !v.ShowResolved {
			continue
		}
		failures = append(failures, failure)
	}
	if len(failures) == 0 {
		green.Fprintln(v.out, "✓ No test failures found!")
		return nil
	}
	fmt.Fprintf(v.out, "%d failure(s) from run %s (%s)\n\n", len(failures), results.Meta.RunID, results.Meta.Timestamp)
	v.formatter.PrintFailureTree(failures)
	return nil
}
