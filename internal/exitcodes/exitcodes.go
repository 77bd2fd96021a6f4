// Package exitcodes maps run reports to process exit codes.
package exitcodes

import "batchtest/internal/domain"

const (
	// Success means every test passed and none were ignored.
	Success = 0
	// TestFailure means at least one test failed.
	TestFailure = 1
	// RuntimeError means the run could not complete, e.g. registration failed
	// or the configuration was invalid.
	RuntimeError = 2
	// SuccessWithIgnored means every test that ran passed but some were ignored.
	SuccessWithIgnored = 3
)

// FromReport picks the exit code for a finished run. err is the error
// returned alongside the report, if any.
func FromReport(report domain.Report, err error) int {
	switch {
	case err != nil:
		return RuntimeError
	case report.Failed:
		return TestFailure
	case report.IgnoredCount > 0:
		return SuccessWithIgnored
	default:
		return Success
	}
}
