package commands

import (
	"github.com/spf13/cobra"

	"batchtest/internal/config"
	"batchtest/internal/exitcodes"
	"batchtest/internal/storage"
	"batchtest/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return &ExitError{Code: exitcodes.RuntimeError, Err: err}
	}

	var viewer ui.Viewer = ui.NewErrorViewer(fc.storage)
	if fc.config.Flags.Plain {
		plain := ui.NewPlainViewer(cmd.OutOrStdout())
		plain.ShowResolved = fc.config.Flags.ShowResolved
		viewer = plain
	}
	return viewer.View(results)
}
