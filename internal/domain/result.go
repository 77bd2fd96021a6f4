package domain

import "time"

// Stage identifies where in the per-test pipeline a failure happened.
type Stage int

const (
	StageNone Stage = iota
	StageSetUp
	StageBody
	StageTearDown
)

func (s Stage) String() string {
	switch s {
	case StageSetUp:
		return "setup"
	case StageBody:
		return "body"
	case StageTearDown:
		return "teardown"
	default:
		return "none"
	}
}

// Outcome is the result of running a single test
type Outcome struct {
	Group    string
	Name     string
	Stage    Stage         // StageNone when the test passed
	Err      error         // First failure, nil when the test passed
	Duration time.Duration // Time spent in the test body
}

// Passed reports whether the test succeeded.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	IgnoredTests    int     `json:"ignored_tests"`
	Failed          bool    `json:"failed"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
