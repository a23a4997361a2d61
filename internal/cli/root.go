// Package cli implements the cobra-based CLI commands for walletdeck.
//
// Running the binary with no arguments enters the interactive menu (the
// launcher's historical interface); the subcommands (run, list, doctor,
// clean) expose the same functionality non-interactively. This file
// defines the root command, global flags, and the error-to-exit-code
// translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aoi-kurokawa/walletdeck/internal/config"
	"github.com/aoi-kurokawa/walletdeck/internal/logging"
	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// Global flag variables shared across all subcommands. They are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// jsonOutput switches list/doctor/clean output and error reporting
	// to structured JSON for machine consumption.
	jsonOutput bool

	// verbose lowers the console log threshold to debug.
	verbose bool

	// plainOutput disables pterm styling. Styling is also disabled
	// automatically when stdout is not a terminal.
	plainOutput bool

	// configPath is an explicit config file location. Empty means search
	// the working directory.
	configPath string
)

// logger is the process-wide launcher logger, configured in
// initRuntime once the config (and its optional logFile override)
// is known.
var logger = zerolog.Nop()

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself runs the interactive menu when invoked with no
// subcommand, so `walletdeck` behaves exactly like the original launcher
// script. Subcommands provide the scriptable surface.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walletdeck",
		Short: "Launcher for the wallet development workspace",
		Long: `walletdeck launches the components of the wallet development workspace:
the Web UI, the CLI wallet manager, and the contract-test runner.

Run without arguments for the interactive menu, or use "walletdeck run"
to launch a target directly. The selected component inherits the
terminal's stdin/stdout/stderr, and walletdeck exits with the
component's exit code.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context())
		},

		// SilenceUsage prevents cobra from printing usage on every error;
		// SilenceErrors lets us format errors ourselves (text or JSON).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Disable styled output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to walletdeck config file")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewDoctorCommand())
	rootCmd.AddCommand(NewCleanCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes — including child process
// exit codes propagated verbatim through launch.Run; other errors
// default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		message, detail, code := exitStatusFor(err)
		printError(message, detail)
		os.Exit(int(code))
	}
}

// exitStatusFor resolves the message, underlying detail, and exit code
// for a command error. CLIError values keep their own code even when
// wrapped further up the chain; anything else maps to ExitGeneralError.
func exitStatusFor(err error) (string, error, model.ExitCode) {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Message, cliErr.Err, cliErr.Code
	}
	return err.Error(), nil, model.ExitGeneralError
}

// initRuntime loads the configuration and wires the logger from it.
// Every command calls this first.
func initRuntime() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger = logging.New(verbose, cfg.LogFile)
	if cfg.Path != "" {
		logger.Debug().Str("config", cfg.Path).Msg("loaded config file")
	} else {
		logger.Debug().Msg("no config file, using built-in targets")
	}
	return cfg, nil
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. Errors always go to
// stderr; stdout is reserved for command output and the child process.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// isPlain reports whether styled output is disabled, either explicitly
// via --plain or because stdout is not a terminal.
func isPlain() bool {
	return plainOutput || !term.IsTerminal(int(os.Stdout.Fd()))
}

// stdinIsTerminal reports whether stdin is a controlling terminal.
// Container targets get -i/-t only in that case.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
