// Package cli — run_test.go tests the run command's target lookup.
package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// useTempConfig points the global --config flag at a minimal config file
// in a temp dir, with the log file redirected there as well so tests do
// not write into the working directory.
func useTempConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	content, err := json.Marshal(map[string]string{
		"logFile": filepath.Join(dir, "walletdeck.log"),
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "walletdeck.json")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

// TestRunUnknownTarget verifies that launching a target that is not
// configured fails with ExitTargetNotFound and names the available
// targets, rather than spawning anything.
func TestRunUnknownTarget(t *testing.T) {
	useTempConfig(t)

	err := runRun(context.Background(), "ganache")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitTargetNotFound, cliErr.Code)
	assert.Contains(t, cliErr.Message, `unknown target "ganache"`)
	assert.Contains(t, cliErr.Message, "web, cli, test")
}
