package domain

// Report aggregates the counts of a single run.
type Report struct {
	TotalCount   int
	FailedCount  int
	IgnoredCount int
	// Failed is set when the run finishes: true if any test failed or
	// registration itself raised an error.
	Failed bool
}

// PassedCount returns the number of tests that ran and succeeded.
func (r Report) PassedCount() int {
	return r.TotalCount - r.FailedCount
}

// Record counts one executed test.
func (r *Report) Record(o Outcome) {
	r.TotalCount++
	if !o.Passed() {
		r.FailedCount++
	}
}

// Finalize computes Failed. registrationErr is the error that aborted
// registration, if any.
func (r *Report) Finalize(registrationErr error) {
	r.Failed = r.FailedCount > 0 || registrationErr != nil
}
