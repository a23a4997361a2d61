// Package cli — run.go implements the "walletdeck run" command, the
// non-interactive way to launch a target. Spawn semantics and exit-code
// propagation are identical to the menu path.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aoi-kurokawa/walletdeck/internal/launch"
	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <target>",
		Short: "Launch a target directly",
		Long: `Launch the named target without the interactive menu.

The target inherits the terminal's stdin/stdout/stderr, and walletdeck
exits with the target's exit code.

Examples:
  walletdeck run web
  walletdeck run test
  walletdeck run cli --verbose`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runRun resolves the target by name and spawns it.
func runRun(ctx context.Context, name string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	target := cfg.TargetByName(name)
	if target == nil {
		names := make([]string, 0, len(cfg.Targets))
		for _, t := range cfg.Targets {
			names = append(names, t.Name)
		}
		return model.NewCLIError(model.ExitTargetNotFound,
			fmt.Sprintf("unknown target %q (available: %s)", name, strings.Join(names, ", ")))
	}

	logger.Info().Str("target", target.Name).Msg("launching target")

	return launch.Run(ctx, target, launch.Options{
		Interactive: stdinIsTerminal(),
		Logger:      logger,
	})
}
