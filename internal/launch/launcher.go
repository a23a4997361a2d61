// Package launch spawns launch targets as child processes.
//
// This is the core of the launcher: one child at a time, stdin/stdout/
// stderr inherited from the controlling terminal unmodified, SIGINT and
// SIGTERM forwarded to the child while it runs, and the child's exit code
// reported back verbatim so the parent can terminate with the same status.
//
// Exec targets run their command directly. Container targets run through
// `docker run --rm` (see the docker package), which forwards the
// container's exit code as its own — so both kinds share one spawn path.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/aoi-kurokawa/walletdeck/internal/config"
	"github.com/aoi-kurokawa/walletdeck/internal/docker"
	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// Options controls how a target is spawned. Zero values inherit the
// launcher's own process streams and environment, which is the production
// configuration; tests substitute buffers.
type Options struct {
	// Stdin, Stdout, Stderr are passed to the child unmodified.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// BaseEnv is the inherited environment. Defaults to os.Environ().
	BaseEnv []string

	// Interactive marks stdin as a controlling terminal; container
	// targets then get -i/-t.
	Interactive bool

	// Logger receives debug events (spawn, exit code). A zerolog.Nop()
	// logger is used when unset.
	Logger zerolog.Logger
}

func (o *Options) applyDefaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.BaseEnv == nil {
		o.BaseEnv = os.Environ()
	}
}

// Run spawns the target and blocks until the child exits.
//
// Returns nil when the child exits 0. A nonzero child exit is returned as
// a model.CLIError carrying the child's code, so the CLI layer terminates
// the parent with the same status. A child that could not be started at
// all yields ExitSpawnFailed with the target's install hint in the
// message.
func Run(ctx context.Context, target *model.Target, opts Options) error {
	opts.applyDefaults()

	cmd, err := buildCommand(ctx, target, opts)
	if err != nil {
		return err
	}

	opts.Logger.Debug().
		Str("target", target.Name).
		Str("command", cmd.Path).
		Strs("args", cmd.Args[1:]).
		Msg("spawning child process")

	if err := cmd.Start(); err != nil {
		return spawnError(target, err)
	}

	// Forward interrupt/terminate to the child for the duration of the
	// run. The child decides how to shut down; the parent just reports
	// whatever exit code results.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	code, err := ExitStatus(waitErr)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("target %q did not run to completion", target.Name), err)
	}

	opts.Logger.Debug().
		Str("target", target.Name).
		Int("exitCode", code).
		Msg("child process exited")

	if code != 0 {
		return model.ChildExitError(target.Name, code, target.InstallHint)
	}
	return nil
}

// buildCommand assembles the exec.Cmd for a target: the direct command
// for exec targets, a `docker run` invocation for container targets.
func buildCommand(ctx context.Context, target *model.Target, opts Options) (*exec.Cmd, error) {
	var cmd *exec.Cmd

	switch target.Kind {
	case model.KindExec:
		cmd = exec.CommandContext(ctx, target.Command, target.Args...)
		cmd.Dir = target.Dir

		env, err := config.BuildEnv(opts.BaseEnv, target)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitSpawnFailed,
				fmt.Sprintf("failed to build environment for target %q", target.Name), err)
		}
		cmd.Env = env

	case model.KindContainer:
		env, err := config.TargetEnv(target)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitSpawnFailed,
				fmt.Sprintf("failed to build environment for target %q", target.Name), err)
		}
		spec := docker.NewRunSpec(target, env, opts.Interactive)
		cmd = exec.CommandContext(ctx, "docker", spec.RunArgs()...)
		cmd.Dir = target.Dir
		cmd.Env = opts.BaseEnv

	default:
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("target %q has unsupported kind %q", target.Name, target.Kind))
	}

	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	return cmd, nil
}

// spawnError wraps a start failure into ExitSpawnFailed, appending the
// target's install hint when one is configured. This is the launcher's
// "dependencies may be missing" message.
func spawnError(target *model.Target, err error) error {
	msg := fmt.Sprintf("failed to start target %q", target.Name)
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		msg = fmt.Sprintf("failed to start target %q: command not found", target.Name)
	}
	if target.InstallHint != "" {
		msg += fmt.Sprintf(" (if dependencies are missing, try `%s`)", target.InstallHint)
	}
	return model.WrapCLIError(model.ExitSpawnFailed, msg, err)
}
