package execution

import (
	"time"

	"batchtest/internal/domain"
	"batchtest/internal/registry"
)

// Summary is what an Executor hands back after running every group
type Summary struct {
	Outcomes []domain.Outcome
	// AllGreen is the conjunction of every test outcome.
	AllGreen bool
	Duration time.Duration
}

// Executor executes registered tests and records them in a report
type Executor interface {
	Execute(groups []registry.Group, report *domain.Report) Summary
}

// Observer is notified after each test finishes
type Observer interface {
	TestFinished(o domain.Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(o domain.Outcome)

// TestFinished calls f.
func (f ObserverFunc) TestFinished(o domain.Outcome) {
	f(o)
}
