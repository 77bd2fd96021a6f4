package execution

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"batchtest/internal/domain"
	"batchtest/internal/logging"
	"batchtest/internal/registry"
)

// Engine runs groups of tests one after another
type Engine struct {
	runner    *Runner
	logger    logging.Logger
	observers []Observer
}

// NewEngine creates a new Engine
func NewEngine(runner *Runner, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard
	}
	return &Engine{runner: runner, logger: logger}
}

// AddObserver registers o to be told about every finished test.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// Execute runs every test strictly in registry order. A failing test never
// stops the run.
func (e *Engine) Execute(groups []registry.Group, report *domain.Report) Summary {
	summary := Summary{AllGreen: true}
	start := time.Now()

	for _, g := range groups {
		e.logger.Log(fmt.Sprintf("Running %s (%d test(s))", g.Name, len(g.Tests)), logging.Info)
		failed := 0
		for _, rec := range g.Tests {
			o := e.runner.Run(rec)
			report.Record(o)
			summary.Outcomes = append(summary.Outcomes, o)
			summary.AllGreen = summary.AllGreen && o.Passed()
			if !o.Passed() {
				failed++
			}
			e.logOutcome(o)
			for _, obs := range e.observers {
				obs.TestFinished(o)
			}
		}
		if failed > 0 {
			e.logger.Log(fmt.Sprintf("Finished %s: %d of %d test(s) failed.", g.Name, failed, len(g.Tests)), logging.Error)
		} else {
			e.logger.Log(fmt.Sprintf("Finished %s: all %d test(s) passed.", g.Name, len(g.Tests)), logging.Info)
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

func (e *Engine) logOutcome(o domain.Outcome) {
	elapsed := o.Duration.Round(time.Microsecond)
	if o.Passed() {
		e.logger.Log(fmt.Sprintf("  %s passed (%s)", o.Name, elapsed), logging.Info)
		return
	}
	e.logger.Log(fmt.Sprintf("  %s Failed in %s (%s): %s", o.Name, o.Stage, elapsed, FailureMessage(o.Err)), logging.Error)

	var panicErr *domain.PanicError
	if errors.As(o.Err, &panicErr) && len(panicErr.Stack) > 0 {
		e.logger.Log(strings.TrimRight(string(panicErr.Stack), "\n"), logging.Error)
	}
}

// FailureMessage renders a test failure without the stage prefix added by
// the runner.
func FailureMessage(err error) string {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		err = stageErr.Err
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
