package selftest

import (
	"errors"
	"fmt"

	"batchtest/internal/domain"
)

// ReportTests checks the counting rules of a run report. One instance is
// shared by every test, so Reset starts each one from an empty report.
type ReportTests struct {
	report domain.Report
	resets int
}

// NewReportTests creates the shared instance.
func NewReportTests() (*ReportTests, error) {
	return &ReportTests{}, nil
}

func (r *ReportTests) Reset() {
	r.report = domain.Report{}
	r.resets++
}

func (r *ReportTests) StartsEmpty() error {
	if r.report != (domain.Report{}) {
		return fmt.Errorf("report after reset = %+v", r.report)
	}
	if r.resets == 0 {
		return errors.New("setup did not run")
	}
	return nil
}

// Counts records passed passing and failed failing outcomes.
func (r *ReportTests) Counts(passed, failed int) error {
	for i := 0; i < passed; i++ {
		r.report.Record(domain.Outcome{})
	}
	for i := 0; i < failed; i++ {
		r.report.Record(domain.Outcome{Stage: domain.StageBody, Err: errors.New("red")})
	}
	r.report.Finalize(nil)

	if r.report.TotalCount != passed+failed || r.report.FailedCount != failed {
		return fmt.Errorf("report = %+v after %d passed and %d failed", r.report, passed, failed)
	}
	if r.report.Failed != (failed > 0) {
		return fmt.Errorf("Failed = %v with %d failure(s)", r.report.Failed, failed)
	}
	return nil
}

func (r *ReportTests) RegistrationFailureFailsRun() error {
	r.report.Finalize(&domain.RegistrationError{Type: "T", Err: errors.New("bad source")})
	if !r.report.Failed || r.report.TotalCount != 0 {
		return fmt.Errorf("report = %+v, want failed with no tests", r.report)
	}
	return nil
}

func (r *ReportTests) CheckInvariants() error {
	if r.report.PassedCount() < 0 || r.report.PassedCount() > r.report.TotalCount {
		return fmt.Errorf("passed count %d outside [0, %d]", r.report.PassedCount(), r.report.TotalCount)
	}
	if r.report.FailedCount > 0 && !r.report.Failed {
		return errors.New("report has failures but is not marked failed")
	}
	return nil
}

// outcomeRows yields (passed, failed) pairs splitting n outcomes every way.
func outcomeRows(n int) [][]any {
	rows := make([][]any, 0, n+1)
	for failed := 0; failed <= n; failed++ {
		rows = append(rows, []any{n - failed, failed})
	}
	return rows
}
