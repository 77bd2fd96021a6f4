package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"batchtest/internal/cli"
	"batchtest/internal/config"
	"batchtest/internal/exitcodes"
	"batchtest/internal/storage"
	"batchtest/pkg/harness"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies. cfg is filled in
// place once flags are parsed, so the dependencies see the final values.
func NewCommands(cfg *config.Config, provider harness.Provider) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)

	return &Commands{
		Run:      NewRunCommand(cfg, provider, jsonStorage),
		List:     NewListCommand(cfg, provider, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return &ExitError{Code: exitcodes.RuntimeError, Err: err}
		}
		*cfg = *loaded
		if cfg.Flags.NoColor {
			color.NoColor = true
		}
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the YAML config file (default batchtest.yaml when present)")
	pf.StringSliceVar(&flags.Ignore, "ignore", nil, "Additional module prefixes to skip when scanning for tests")
	pf.BoolVar(&flags.ReplaceIgnored, "replace-ignored", false, "Use only the --ignore prefixes instead of adding them to the configured ones")
	pf.StringVar(&flags.ResultsDir, "results-dir", "", "Directory holding the results file (default storage)")
	pf.StringVar(&flags.LogFormat, "log-format", "", "Log output format: text or json")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable coloured output")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run all declared tests",
		Long:  "Discover every declared test type, run its tests in order and report the counts",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().BoolVar(&flags.NoResults, "no-results", false, "Do not write the results file")
	runCmd.Flags().BoolVar(&flags.NoGC, "no-gc", false, "Skip the garbage collection forced before each test")
	runCmd.Flags().BoolVarP(&flags.Progress, "progress", "p", false, "Show a progress bar and only log warnings and errors")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Register every declared test without running it and print the test names by group",
		RunE:  c.List.Execute,
	}
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Aliases: []string{"faills"},
		Short:   "View test failures from the last run",
		Long:    "Display test failures from the last saved run in an interactive viewer",
		RunE:    c.Failures.Execute,
	}
	failuresCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print failures instead of opening the interactive viewer")
	failuresCmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Include failures marked as resolved (with --plain)")
	rootCmd.AddCommand(failuresCmd)
}
