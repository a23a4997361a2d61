// Package cli — menu.go implements the interactive launcher menu that
// runs when walletdeck is invoked without a subcommand.
//
// Flow: banner → numbered menu → validated choice prompt → spawn the
// selected target with inherited stdio → exit with the child's code.
// Invalid input re-prompts without spawning anything; the Exit entry,
// stdin EOF, and SIGINT/SIGTERM at the prompt all exit with code 0.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aoi-kurokawa/walletdeck/internal/launch"
	"github.com/aoi-kurokawa/walletdeck/internal/ui"
)

// runMenu is the main logic for the bare `walletdeck` invocation.
func runMenu(ctx context.Context) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	plain := isPlain()
	ui.Banner(os.Stdout, Version, plain)

	items := ui.BuildMenu(cfg.Targets)
	ui.RenderMenu(os.Stdout, items, plain)

	// A signal at the prompt is a graceful exit, not an error — the
	// signal context only covers the prompt. It is released before any
	// child is spawned so that launch.Run's own forwarding decides what
	// interrupts mean while a component runs.
	promptCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	item, err := ui.PromptChoice(promptCtx, os.Stdin, os.Stdout, items, plain)
	stop()

	if errors.Is(err, ui.ErrCancelled) {
		fmt.Fprintln(os.Stdout)
		logger.Debug().Msg("menu cancelled, exiting")
		return nil
	}
	if err != nil {
		return err
	}

	if item.Target == nil {
		logger.Debug().Msg("exit selected")
		return nil
	}

	logger.Info().Str("target", item.Target.Name).Msg("launching target from menu")
	ui.Info(os.Stdout, plain, "Starting %s...", item.Target.MenuLabel())

	return launch.Run(ctx, item.Target, launch.Options{
		Interactive: stdinIsTerminal(),
		Logger:      logger,
	})
}
