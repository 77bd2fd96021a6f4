package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"batchtest/internal/config"
	"batchtest/internal/exitcodes"
	"batchtest/internal/storage"
	"batchtest/internal/ui"
	"batchtest/pkg/harness"
)

// ListCommand handles the list command
type ListCommand struct {
	config   *config.Config
	provider harness.Provider
	storage  storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, provider harness.Provider, st storage.Storage) *ListCommand {
	return &ListCommand{
		config:   cfg,
		provider: provider,
		storage:  st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	h := harness.New(
		harness.WithProvider(lc.provider),
		harness.WithIgnoredPrefixes(lc.config.IgnoredModulePrefixes),
	)
	if err := h.RegisterTests(); err != nil {
		return &ExitError{Code: exitcodes.RuntimeError, Err: err}
	}

	groups := h.Groups()
	if len(groups) == 0 && h.Ignored() == 0 {
		color.New(color.FgYellow).Fprintln(out, "No tests found")
		return nil
	}

	ui.NewFormatter(out).PrintTestList(groups, h.Ignored(), lc.lastFailures())
	return nil
}

// lastFailures returns the unresolved failures of the last saved run, keyed
// by "Group.Name". A missing results file means none.
func (lc *ListCommand) lastFailures() map[string]struct{} {
	failed := make(map[string]struct{})
	output, err := lc.storage.Load()
	if err != nil {
		return failed
	}
	for _, f := range output.Details {
		if !f.Resolved {
			failed[f.Group+"."+f.TestName] = struct{}{}
		}
	}
	return failed
}
