// Package cli — doctor_test.go tests the doctor check logic against fake
// environment probes, so no PATH lookups, filesystem access, or Docker
// daemon are involved.
package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// fakeProbes returns probes where everything passes; tests override
// individual fields to trigger findings.
func fakeProbes() doctorProbes {
	return doctorProbes{
		lookPath:   func(string) (string, error) { return "/usr/bin/node", nil },
		stat:       func(string) (os.FileInfo, error) { return nil, nil },
		portFree:   func(int) bool { return true },
		dockerPing: func(context.Context) error { return nil },
	}
}

// findCheck returns the first result for the given target/check pair.
func findCheck(t *testing.T, results []CheckResult, target, check string) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Target == target && r.Check == check {
			return r
		}
	}
	t.Fatalf("no %s/%s check in %v", target, check, results)
	return CheckResult{}
}

func TestRunChecksAllPassing(t *testing.T) {
	targets := []model.Target{
		{Name: "web", Kind: model.KindExec, Command: "node",
			Args: []string{"scripts/start-web-ui.js"}, InstallHint: "npm install", Port: 3000},
	}

	results := RunChecks(context.Background(), targets, fakeProbes())

	// command, script, dependencies, port — all OK.
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, CheckOK, r.Status, "check %s/%s", r.Target, r.Check)
	}
}

func TestRunChecksCommandMissing(t *testing.T) {
	probes := fakeProbes()
	probes.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	targets := []model.Target{{Name: "web", Kind: model.KindExec, Command: "node"}}
	results := RunChecks(context.Background(), targets, probes)

	cmd := findCheck(t, results, "web", "command")
	assert.Equal(t, CheckFail, cmd.Status)
	assert.Contains(t, cmd.Detail, `"node" not found on PATH`)
}

func TestRunChecksScriptMissing(t *testing.T) {
	probes := fakeProbes()
	probes.stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }

	targets := []model.Target{
		{Name: "cli", Kind: model.KindExec, Command: "node", Args: []string{"scripts/wallet-manager.js"}},
	}
	results := RunChecks(context.Background(), targets, probes)

	script := findCheck(t, results, "cli", "script")
	assert.Equal(t, CheckFail, script.Status)
	assert.Contains(t, script.Detail, "scripts/wallet-manager.js not found")
}

func TestRunChecksNodeModulesMissing(t *testing.T) {
	probes := fakeProbes()
	probes.stat = func(path string) (os.FileInfo, error) {
		if path == "node_modules" {
			return nil, os.ErrNotExist
		}
		return nil, nil
	}

	targets := []model.Target{
		{Name: "web", Kind: model.KindExec, Command: "node",
			Args: []string{"--version"}, InstallHint: "npm install"},
	}
	results := RunChecks(context.Background(), targets, probes)

	deps := findCheck(t, results, "web", "dependencies")
	assert.Equal(t, CheckFail, deps.Status)
	assert.Contains(t, deps.Detail, "run `npm install`")
}

// TestRunChecksBusyPortWarns verifies that an occupied port is a warning,
// not a failure — the occupant may be the component itself.
func TestRunChecksBusyPortWarns(t *testing.T) {
	probes := fakeProbes()
	probes.portFree = func(int) bool { return false }

	targets := []model.Target{
		{Name: "web", Kind: model.KindExec, Command: "node", Port: 3000},
	}
	results := RunChecks(context.Background(), targets, probes)

	portCheck := findCheck(t, results, "web", "port")
	assert.Equal(t, CheckWarn, portCheck.Status)
	assert.Contains(t, portCheck.Detail, "port 3000 is already in use")
}

func TestRunChecksDocker(t *testing.T) {
	targets := []model.Target{
		{Name: "anvil", Kind: model.KindContainer, Image: "foundry"},
	}

	t.Run("daemon reachable", func(t *testing.T) {
		results := RunChecks(context.Background(), targets, fakeProbes())
		dockerCheck := findCheck(t, results, "-", "docker")
		assert.Equal(t, CheckOK, dockerCheck.Status)
	})

	t.Run("daemon unreachable", func(t *testing.T) {
		probes := fakeProbes()
		probes.dockerPing = func(context.Context) error { return errors.New("connection refused") }
		results := RunChecks(context.Background(), targets, probes)
		dockerCheck := findCheck(t, results, "-", "docker")
		assert.Equal(t, CheckFail, dockerCheck.Status)
	})

	t.Run("docker checked once for multiple container targets", func(t *testing.T) {
		two := []model.Target{
			{Name: "a", Kind: model.KindContainer, Image: "x"},
			{Name: "b", Kind: model.KindContainer, Image: "y"},
		}
		results := RunChecks(context.Background(), two, fakeProbes())
		count := 0
		for _, r := range results {
			if r.Check == "docker" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestScriptArg(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: ""},
		{name: "path with separator", args: []string{"scripts/start-web-ui.js"}, want: "scripts/start-web-ui.js"},
		{name: "bare js file", args: []string{"server.js"}, want: "server.js"},
		{name: "shell script", args: []string{"boot.sh"}, want: "boot.sh"},
		{name: "plain flag", args: []string{"--version"}, want: ""},
		{name: "subcommand", args: []string{"test"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &model.Target{Args: tt.args}
			assert.Equal(t, tt.want, scriptArg(target))
		})
	}
}
