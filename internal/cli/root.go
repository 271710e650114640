// Package cli implements the acs command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/config"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/server"
)

var (
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE.
	appConfig *config.Config
	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "acs",
	Version: server.Version,
	Short:   "Score and improve acceptance criteria",
	Long: `acs scores acceptance criteria documents from 0 to 100 across structure,
clarity, testability and completeness, and serves the same engine to AI
assistants over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		slog.SetDefault(logger)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger.Debug("config loaded", "data_dir", cfg.DataDir, "workflow_dir", cfg.WorkflowDir())
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <data_dir>/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}
	return reportError(RootCmd.ErrOrStderr(), err)
}

// reportError prints err with its hint and returns the exit code.
func reportError(w io.Writer, err error) int {
	err = MapError(err)
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintf(w, "Error: %s\n", cliErr.Error())
		if cliErr.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", cliErr.Hint)
		}
		return cliErr.ExitCode
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}

// newLogger writes text logs to w. Verbose enables debug records;
// otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newValidator builds a validator from the loaded config.
func newValidator() *scoring.Validator {
	if appConfig == nil {
		return scoring.NewValidator()
	}
	return scoring.NewValidator(scoring.WithMinLength(appConfig.MinLength))
}
