package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// TestBuildEnv verifies the layering order: inherited environment,
// then dotenv file entries, then the target's inline env map.
func TestBuildEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin", "RPC_URL=http://localhost:8545", "HOME=/home/dev"}

	t.Run("no overrides returns base", func(t *testing.T) {
		target := &model.Target{Name: "web"}
		env, err := BuildEnv(base, target)
		require.NoError(t, err)
		assert.Equal(t, base, env)
	})

	t.Run("inline env overrides base", func(t *testing.T) {
		target := &model.Target{
			Name: "web",
			Env:  map[string]string{"RPC_URL": "http://localhost:9545", "CHAIN_ID": "31337"},
		}
		env, err := BuildEnv(base, target)
		require.NoError(t, err)
		assert.Contains(t, env, "RPC_URL=http://localhost:9545")
		assert.Contains(t, env, "CHAIN_ID=31337")
		assert.NotContains(t, env, "RPC_URL=http://localhost:8545")
		// Overriding must not duplicate the key.
		assert.Len(t, env, 4)
	})

	t.Run("env file overrides base, inline overrides env file", func(t *testing.T) {
		dir := t.TempDir()
		envFile := writeFile(t, dir, ".env", "RPC_URL=http://envfile:8545\nGAS_LIMIT=3000000\n")

		target := &model.Target{
			Name:    "test",
			EnvFile: envFile,
			Env:     map[string]string{"GAS_LIMIT": "5000000"},
		}
		env, err := BuildEnv(base, target)
		require.NoError(t, err)
		assert.Contains(t, env, "RPC_URL=http://envfile:8545")
		assert.Contains(t, env, "GAS_LIMIT=5000000")
	})

	t.Run("missing env file is an error", func(t *testing.T) {
		target := &model.Target{Name: "web", EnvFile: "/does/not/exist/.env"}
		_, err := BuildEnv(base, target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `env file for target "web"`)
	})

	t.Run("base entry order is preserved", func(t *testing.T) {
		target := &model.Target{Name: "web", Env: map[string]string{"ZZZ": "1"}}
		env, err := BuildEnv(base, target)
		require.NoError(t, err)
		assert.Equal(t, "PATH=/usr/bin", env[0])
		assert.Equal(t, "ZZZ=1", env[len(env)-1])
	})
}

// TestTargetEnv verifies the container-side env resolution: dotenv file
// entries overlaid with the inline env map, no inherited environment.
func TestTargetEnv(t *testing.T) {
	t.Run("nil when target declares nothing", func(t *testing.T) {
		env, err := TargetEnv(&model.Target{Name: "anvil"})
		require.NoError(t, err)
		assert.Nil(t, env)
	})

	t.Run("inline overrides env file", func(t *testing.T) {
		dir := t.TempDir()
		envFile := writeFile(t, dir, ".env", "RPC_URL=http://envfile:8545\nGAS_LIMIT=3000000\n")

		env, err := TargetEnv(&model.Target{
			Name:    "anvil",
			EnvFile: envFile,
			Env:     map[string]string{"GAS_LIMIT": "5000000"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"RPC_URL":   "http://envfile:8545",
			"GAS_LIMIT": "5000000",
		}, env)
	})

	t.Run("missing env file is an error", func(t *testing.T) {
		_, err := TargetEnv(&model.Target{Name: "anvil", EnvFile: "/does/not/exist/.env"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `env file for target "anvil"`)
	})
}
