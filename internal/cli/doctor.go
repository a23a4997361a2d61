// Package cli — doctor.go implements the "walletdeck doctor" command,
// the launcher's dependency check.
//
// For each target it verifies that the command is on PATH, that the
// script it points at exists, and that the npm dependency tree is
// installed when the target relies on one. Targets with a known port get
// a port-availability warning; container targets require a responsive
// Docker daemon. The command exits 0 when everything passes and 6 when
// any check fails — port conflicts are warnings, not failures, because
// the occupying process may well be an already-running instance of the
// component itself.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aoi-kurokawa/walletdeck/internal/docker"
	"github.com/aoi-kurokawa/walletdeck/internal/model"
	"github.com/aoi-kurokawa/walletdeck/internal/port"
	"github.com/aoi-kurokawa/walletdeck/internal/ui"
)

// CheckStatus is the outcome of a single doctor check.
type CheckStatus string

const (
	// CheckOK means the check passed.
	CheckOK CheckStatus = "ok"

	// CheckWarn means the check found something suspicious that does not
	// block launching (e.g. the target's port is already in use).
	CheckWarn CheckStatus = "warn"

	// CheckFail means the target cannot be launched as configured.
	CheckFail CheckStatus = "fail"
)

// CheckResult is one doctor finding.
type CheckResult struct {
	Target string      `json:"target"`
	Check  string      `json:"check"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail"`
}

// doctorProbes holds the environment probes the checks run against.
// Injected so tests can exercise the check logic without touching the
// real PATH, filesystem, network, or Docker daemon.
type doctorProbes struct {
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
	portFree   func(int) bool
	dockerPing func(context.Context) error
}

// realProbes builds probes backed by the actual host environment.
func realProbes() doctorProbes {
	scanner := port.NewScanner()
	return doctorProbes{
		lookPath: exec.LookPath,
		stat:     os.Stat,
		portFree: func(p int) bool { return scanner.IsPortAvailable(p, "tcp") },
		dockerPing: func(ctx context.Context) error {
			cli, err := docker.NewClient()
			if err != nil {
				return err
			}
			defer func() { _ = cli.Close() }()
			return cli.Ping(ctx)
		},
	}
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the launch targets can actually run",
		Long: `Verify the workspace dependencies behind each launch target:
commands on PATH, scripts present, npm dependencies installed, ports
free, and the Docker daemon reachable for container targets.

Examples:
  walletdeck doctor
  walletdeck doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}

	return cmd
}

// runDoctor is the main logic function for the doctor command.
func runDoctor(ctx context.Context) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	results := RunChecks(ctx, cfg.Targets, realProbes())
	printDoctorResult(results)

	failed := 0
	for _, r := range results {
		if r.Status == CheckFail {
			failed++
		}
	}

	logger.Info().Int("checks", len(results)).Int("failed", failed).Msg("doctor finished")

	if failed > 0 {
		return model.NewCLIError(model.ExitDoctorFailed,
			fmt.Sprintf("%d check(s) failed", failed))
	}
	return nil
}

// RunChecks evaluates all doctor checks for the given targets.
// Exported for testing purposes (tested in doctor_test.go).
func RunChecks(ctx context.Context, targets []model.Target, probes doctorProbes) []CheckResult {
	var results []CheckResult
	needsDocker := false

	for i := range targets {
		t := &targets[i]
		switch t.Kind {
		case model.KindExec:
			results = append(results, checkExecTarget(t, probes)...)
		case model.KindContainer:
			needsDocker = true
		}

		if t.Port > 0 {
			results = append(results, checkPort(t, probes))
		}
	}

	if needsDocker {
		results = append(results, checkDocker(ctx, probes))
	}

	return results
}

// checkExecTarget verifies an exec target's command, script, and npm
// dependency tree.
func checkExecTarget(t *model.Target, probes doctorProbes) []CheckResult {
	var results []CheckResult

	if _, err := probes.lookPath(t.Command); err != nil {
		results = append(results, CheckResult{
			Target: t.Name, Check: "command", Status: CheckFail,
			Detail: fmt.Sprintf("%q not found on PATH", t.Command),
		})
	} else {
		results = append(results, CheckResult{
			Target: t.Name, Check: "command", Status: CheckOK,
			Detail: fmt.Sprintf("%q found on PATH", t.Command),
		})
	}

	if script := scriptArg(t); script != "" {
		path := script
		if t.Dir != "" && !filepath.IsAbs(script) {
			path = filepath.Join(t.Dir, script)
		}
		if _, err := probes.stat(path); err != nil {
			results = append(results, CheckResult{
				Target: t.Name, Check: "script", Status: CheckFail,
				Detail: fmt.Sprintf("script %s not found", path),
			})
		} else {
			results = append(results, CheckResult{
				Target: t.Name, Check: "script", Status: CheckOK,
				Detail: fmt.Sprintf("script %s present", path),
			})
		}
	}

	if t.InstallHint == "npm install" {
		dir := filepath.Join(t.Dir, "node_modules")
		if _, err := probes.stat(dir); err != nil {
			results = append(results, CheckResult{
				Target: t.Name, Check: "dependencies", Status: CheckFail,
				Detail: fmt.Sprintf("%s missing — run `npm install`", dir),
			})
		} else {
			results = append(results, CheckResult{
				Target: t.Name, Check: "dependencies", Status: CheckOK,
				Detail: "node_modules present",
			})
		}
	}

	return results
}

// scriptArg returns the target's first argument when it looks like a
// script path worth stat-ing, or "" when the argument is a plain flag or
// subcommand name.
func scriptArg(t *model.Target) string {
	if len(t.Args) == 0 {
		return ""
	}
	arg := t.Args[0]
	if strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') {
		return arg
	}
	switch filepath.Ext(arg) {
	case ".js", ".mjs", ".cjs", ".ts", ".sh":
		return arg
	}
	return ""
}

// checkPort reports whether the target's configured port is free.
func checkPort(t *model.Target, probes doctorProbes) CheckResult {
	if probes.portFree(t.Port) {
		return CheckResult{
			Target: t.Name, Check: "port", Status: CheckOK,
			Detail: fmt.Sprintf("port %d is free", t.Port),
		}
	}
	return CheckResult{
		Target: t.Name, Check: "port", Status: CheckWarn,
		Detail: fmt.Sprintf("port %d is already in use", t.Port),
	}
}

// checkDocker verifies Docker daemon reachability for container targets.
func checkDocker(ctx context.Context, probes doctorProbes) CheckResult {
	if err := probes.dockerPing(ctx); err != nil {
		return CheckResult{
			Target: "-", Check: "docker", Status: CheckFail,
			Detail: fmt.Sprintf("Docker daemon not reachable: %v", err),
		}
	}
	return CheckResult{
		Target: "-", Check: "docker", Status: CheckOK,
		Detail: "Docker daemon is responding",
	}
}

// printDoctorResult outputs the check results in text or JSON format.
func printDoctorResult(results []CheckResult) {
	if IsJSONOutput() {
		type resultJSON struct {
			Checks []CheckResult `json:"checks"`
		}
		data, _ := json.MarshalIndent(resultJSON{Checks: results}, "", "  ")
		fmt.Println(string(data))
		return
	}

	plain := isPlain()
	for _, r := range results {
		line := fmt.Sprintf("%-8s %-13s %s", r.Target, r.Check, r.Detail)
		switch r.Status {
		case CheckOK:
			ui.Success(os.Stdout, plain, "%s", line)
		case CheckWarn:
			ui.Warn(os.Stdout, plain, "%s", line)
		case CheckFail:
			ui.Error(os.Stdout, plain, "%s", line)
		}
	}
}
