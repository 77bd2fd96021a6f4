// Package harness discovers the test types declared with testkit, runs them
// and reports the counts.
//
// A Harness owns its registry and report. Run rebuilds the registry from
// scratch, executes every test in order and returns the report:
//
//	h := harness.New()
//	report, err := h.Run()
//	if report.Failed {
//		os.Exit(1)
//	}
package harness

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"batchtest/internal/config"
	"batchtest/internal/discovery"
	"batchtest/internal/domain"
	"batchtest/internal/execution"
	"batchtest/internal/logging"
	"batchtest/internal/registry"
	"batchtest/pkg/testkit"
)

// Aliases exposing the harness's collaborators outside this module.
type (
	Report       = domain.Report
	Outcome      = domain.Outcome
	Summary      = execution.Summary
	Group        = registry.Group
	Logger       = logging.Logger
	Severity     = logging.Severity
	Observer     = execution.Observer
	ObserverFunc = execution.ObserverFunc
	Provider     = discovery.Provider
)

const (
	Info    = logging.Info
	Warning = logging.Warning
	Error   = logging.Error
)

// ErrRunInProgress is returned by Run when called while a run is underway,
// e.g. from inside a test body.
var ErrRunInProgress = errors.New("harness: run already in progress")

// Harness registers and runs tests.
type Harness struct {
	provider        Provider
	ignoredPrefixes []string
	logger          Logger
	collectGarbage  bool
	observers       []Observer
	executor        execution.Executor
	onRegistered    func(groups []Group)

	scanner  *discovery.Scanner
	expander *discovery.Expander
	registry *registry.Registry

	running atomic.Bool
	ignored int
	report  Report
	summary Summary
}

// Option configures a Harness.
type Option func(*Harness)

// WithProvider scans p instead of testkit.Default.
func WithProvider(p Provider) Option {
	return func(h *Harness) { h.provider = p }
}

// WithIgnoredPrefixes replaces the module prefixes excluded from scanning.
func WithIgnoredPrefixes(prefixes []string) Option {
	return func(h *Harness) { h.ignoredPrefixes = append([]string(nil), prefixes...) }
}

// WithLogger sends the harness's log lines to l.
func WithLogger(l Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithCollectGarbage turns the collection forced before each test body on or off.
func WithCollectGarbage(enabled bool) Option {
	return func(h *Harness) { h.collectGarbage = enabled }
}

// WithObserver registers o to be told about every finished test.
func WithObserver(o Observer) Option {
	return func(h *Harness) { h.observers = append(h.observers, o) }
}

// WithRegistered calls fn with the registered groups once registration
// succeeds, before any test runs.
func WithRegistered(fn func(groups []Group)) Option {
	return func(h *Harness) { h.onRegistered = fn }
}

// WithExecutor replaces the sequential engine. Observers are not forwarded to
// a custom executor.
func WithExecutor(e execution.Executor) Option {
	return func(h *Harness) { h.executor = e }
}

// New creates a Harness over testkit.Default, skipping the modules listed in
// config.DefaultIgnoredModulePrefixes.
func New(opts ...Option) *Harness {
	h := &Harness{
		provider:        testkit.Default,
		ignoredPrefixes: append([]string(nil), config.DefaultIgnoredModulePrefixes...),
		logger:          logging.Discard,
		collectGarbage:  true,
		registry:        registry.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.scanner = discovery.NewScanner(h.ignoredPrefixes)
	h.expander = discovery.NewExpander(h.provider)
	if h.executor == nil {
		engine := execution.NewEngine(execution.NewRunner(h.collectGarbage), h.logger)
		for _, o := range h.observers {
			engine.AddObserver(o)
		}
		h.executor = engine
	}
	return h
}

// Run registers every test and executes them in order. When registration
// fails nothing is executed and the returned report is marked failed with
// no tests counted; the registration error is returned alongside it.
func (h *Harness) Run() (Report, error) {
	if !h.running.CompareAndSwap(false, true) {
		return Report{}, ErrRunInProgress
	}
	defer h.running.Store(false)

	h.report = Report{}
	h.summary = Summary{}

	start := time.Now()
	if err := h.RegisterTests(); err != nil {
		h.registry.Reset()
		h.report.Finalize(err)
		h.logger.Log(fmt.Sprintf("Test registration failed: %v", err), logging.Error)
		return h.report, err
	}
	h.logger.Log(fmt.Sprintf("Registered %d test(s) in %s.", h.registry.Len(), time.Since(start).Round(time.Microsecond)), logging.Info)

	if h.onRegistered != nil {
		h.onRegistered(h.registry.Groups())
	}
	h.report.IgnoredCount = h.ignored
	h.summary = h.executor.Execute(h.registry.Groups(), &h.report)
	h.report.Finalize(nil)

	if h.summary.AllGreen != (h.report.FailedCount == 0) {
		h.logger.Log(fmt.Sprintf("Inconsistent results: all green is %v but %d test(s) failed.", h.summary.AllGreen, h.report.FailedCount), logging.Error)
	}
	h.logSummary()
	return h.report, nil
}

func (h *Harness) logSummary() {
	line := fmt.Sprintf("%d/%d test(s) succeeded.", h.report.PassedCount(), h.report.TotalCount)
	if h.report.Failed {
		h.logger.Log(line, logging.Error)
	} else {
		h.logger.Log(line, logging.Info)
	}
	if h.report.IgnoredCount > 0 {
		h.logger.Log(fmt.Sprintf("%d test(s) ignored.", h.report.IgnoredCount), logging.Warning)
	}
}

// Report returns the report of the last run.
func (h *Harness) Report() Report {
	return h.report
}

// Summary returns the per-test outcomes of the last run.
func (h *Harness) Summary() Summary {
	return h.summary
}

// Groups returns the tests registered by the last registration pass.
func (h *Harness) Groups() []Group {
	return h.registry.Groups()
}

// Ignored returns the number of playmode tests skipped by the last
// registration pass.
func (h *Harness) Ignored() int {
	return h.ignored
}

var std = New()

// RunAllTests runs every test declared in testkit.Default with the default
// harness. Read the outcome with LastReport.
func RunAllTests() {
	std.Run()
}

// LastReport returns the report of the last RunAllTests.
func LastReport() Report {
	return std.Report()
}
