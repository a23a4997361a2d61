package docker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

func TestNewRunSpec(t *testing.T) {
	target := &model.Target{
		Name:  "anvil",
		Kind:  model.KindContainer,
		Image: "ghcr.io/foundry-rs/foundry:latest",
		Args:  []string{"anvil", "--port", "8545"},
		Env:   map[string]string{"CHAIN_ID": "31337"},
	}

	spec := NewRunSpec(target, map[string]string{"CHAIN_ID": "31337"}, true)

	assert.Equal(t, "anvil", spec.Target)
	assert.Equal(t, "ghcr.io/foundry-rs/foundry:latest", spec.Image)
	assert.Equal(t, map[string]string{"CHAIN_ID": "31337"}, spec.Env)
	assert.True(t, spec.Interactive)
	assert.NotEmpty(t, spec.RunID)

	// Each launch gets its own run ID.
	other := NewRunSpec(target, nil, true)
	assert.NotEqual(t, spec.RunID, other.RunID)
}

func TestRunSpecContainerName(t *testing.T) {
	spec := RunSpec{Target: "anvil", RunID: "3f2c1c9e-aaaa-bbbb-cccc-000000000000"}
	assert.Equal(t, "walletdeck-anvil-3f2c1c9e", spec.ContainerName())
}

// TestRunSpecRunArgs verifies the generated `docker run` argument list:
// --rm, labels, env flags in sorted order, image, then container args.
func TestRunSpecRunArgs(t *testing.T) {
	spec := RunSpec{
		Target:      "anvil",
		Image:       "ghcr.io/foundry-rs/foundry:latest",
		Args:        []string{"anvil", "--port", "8545"},
		Env:         map[string]string{"B_VAR": "2", "A_VAR": "1"},
		Interactive: false,
		RunID:       "deadbeef-0000-0000-0000-000000000000",
		StartedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	args := spec.RunArgs()
	joined := strings.Join(args, " ")

	assert.Equal(t, "run", args[0])
	assert.Equal(t, "--rm", args[1])
	assert.Contains(t, joined, "--name walletdeck-anvil-deadbeef")
	assert.Contains(t, joined, "--label "+LabelManagedBy+"="+ManagedByValue)
	assert.Contains(t, joined, "--label "+LabelTarget+"=anvil")
	assert.Contains(t, joined, "--label "+LabelStartedAt+"=2026-08-30T10:00:00Z")
	assert.NotContains(t, args, "-i")
	assert.NotContains(t, args, "-t")

	// Env flags are emitted in sorted key order.
	assert.Contains(t, joined, "--env A_VAR=1 --env B_VAR=2")

	// The image separates docker flags from the container command.
	require.GreaterOrEqual(t, len(args), 4)
	assert.Equal(t, []string{"anvil", "--port", "8545"}, args[len(args)-3:])
	assert.Equal(t, "ghcr.io/foundry-rs/foundry:latest", args[len(args)-4])
}

func TestRunSpecRunArgsInteractive(t *testing.T) {
	spec := RunSpec{
		Target:      "anvil",
		Image:       "img",
		Interactive: true,
		RunID:       "r",
		StartedAt:   time.Now(),
	}

	args := spec.RunArgs()
	assert.Contains(t, args, "-i")
	assert.Contains(t, args, "-t")
}
