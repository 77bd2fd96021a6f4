package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"batchtest/internal/config"
	"batchtest/internal/exitcodes"
	"batchtest/internal/logging"
	"batchtest/internal/storage"
	"batchtest/internal/ui"
	"batchtest/pkg/harness"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	provider harness.Provider
	storage  storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, provider harness.Provider, st storage.Storage) *RunCommand {
	return &RunCommand{
		config:   cfg,
		provider: provider,
		storage:  st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := newLogger(rc.config, out)
	opts := []harness.Option{
		harness.WithProvider(rc.provider),
		harness.WithIgnoredPrefixes(rc.config.IgnoredModulePrefixes),
		harness.WithCollectGarbage(rc.config.CollectGarbage),
	}

	var bar *ui.ProgressBar
	if rc.config.Flags.Progress {
		errOut := cmd.ErrOrStderr()
		opts = append(opts,
			harness.WithRegistered(func(groups []harness.Group) {
				bar = ui.NewProgressBar(countTests(groups), errOut)
			}),
			harness.WithObserver(harness.ObserverFunc(func(o harness.Outcome) {
				if bar != nil {
					bar.TestFinished(o)
				}
			})),
		)
		logger = logging.Filter(logger, logging.Warning)
	}
	opts = append(opts, harness.WithLogger(logger))

	h := harness.New(opts...)
	report, runErr := h.Run()
	if bar != nil {
		bar.Finish()
	}
	if runErr != nil {
		// Already logged by the harness. The failed, empty report replaces
		// the previous run's results.
		if !rc.config.Flags.NoResults {
			if err := rc.storage.Save(report, nil, 0); err != nil {
				return &ExitError{Code: exitcodes.RuntimeError, Err: fmt.Errorf("failed to save test results: %w", err)}
			}
		}
		return &ExitError{Code: exitcodes.RuntimeError}
	}

	if !rc.config.Flags.NoResults {
		if err := rc.saveAndPrint(out, report, h.Summary()); err != nil {
			return &ExitError{Code: exitcodes.RuntimeError, Err: err}
		}
	}

	if code := exitcodes.FromReport(report, nil); code != exitcodes.Success {
		return &ExitError{Code: code}
	}
	return nil
}

func (rc *RunCommand) saveAndPrint(out io.Writer, report harness.Report, summary harness.Summary) error {
	if err := rc.storage.Save(report, summary.Outcomes, summary.Duration); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	if rc.config.LogFormat != config.LogFormatText {
		return nil
	}
	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	ui.NewFormatter(out).PrintSummary(output)
	return nil
}

func newLogger(cfg *config.Config, out io.Writer) logging.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return logging.NewJSON(out)
	}
	console := logging.NewConsole(out)
	if cfg.Flags.NoColor {
		console.SetColor(false)
	}
	return console
}

func countTests(groups []harness.Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tests)
	}
	return n
}
