package execution

import (
	"runtime"
	"runtime/debug"
	"time"

	"batchtest/internal/domain"
)

// Runner executes a single test
type Runner struct {
	collectGarbage bool
}

// NewRunner creates a new Runner. With collectGarbage set, a collection is
// forced before each test body so lifetime bugs surface in the test that
// causes them.
func NewRunner(collectGarbage bool) *Runner {
	return &Runner{collectGarbage: collectGarbage}
}

// Run takes rec through setup, body and teardown. Teardowns always run, in
// order, whatever happened before them. The first failure decides the
// outcome's stage.
func (r *Runner) Run(rec domain.TestRecord) domain.Outcome {
	out := domain.Outcome{Group: rec.Group, Name: rec.DisplayName}
	fail := func(stage domain.Stage, err error) {
		if out.Err == nil {
			out.Stage = stage
			out.Err = &domain.StageError{Stage: stage, Err: err}
		}
	}

	for _, setUp := range rec.SetUps {
		if err := protect(setUp); err != nil {
			fail(domain.StageSetUp, err)
			break
		}
	}

	if out.Err == nil {
		if r.collectGarbage {
			runtime.GC()
		}
		start := time.Now()
		if err := protect(rec.Invoke); err != nil {
			fail(domain.StageBody, err)
		}
		out.Duration = time.Since(start)
	}

	for _, tearDown := range rec.TearDowns {
		if err := protect(tearDown); err != nil {
			fail(domain.StageTearDown, err)
		}
	}
	return out
}

// protect calls c, turning a panic into a PanicError.
func protect(c domain.Callable) (err error) {
	if c == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &domain.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return c()
}
