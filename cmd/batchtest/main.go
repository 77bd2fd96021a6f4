package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"batchtest/internal/cli"
	"batchtest/internal/cli/commands"
	"batchtest/internal/config"
	_ "batchtest/internal/selftest"
	"batchtest/pkg/testkit"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "batchtest",
		Short:   "Reflection-driven batch test harness",
		Long:    `Discovers test types declared with testkit, runs every test in a fixed order and reports how many passed, failed or were ignored.`,
		Version: version,
	}

	cfg := config.New()
	var flags cli.Flags

	cmds := commands.NewCommands(cfg, testkit.Default)
	cmds.Register(rootCmd, &flags, cfg)

	err := rootCmd.Execute()
	var exitErr *commands.ExitError
	if err != nil && (!errors.As(err, &exitErr) || exitErr.Err != nil) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(commands.ExitCode(err))
}
