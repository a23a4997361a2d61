package docker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestBuildLabels verifies that BuildLabels produces the full walletdeck
// label set with UTC timestamps.
func TestBuildLabels(t *testing.T) {
	startedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	labels := BuildLabels("anvil", "3f2c1c9e-0000-0000-0000-000000000000", startedAt)

	assert.Equal(t, ManagedByValue, labels[LabelManagedBy])
	assert.Equal(t, "anvil", labels[LabelTarget])
	assert.Equal(t, "3f2c1c9e-0000-0000-0000-000000000000", labels[LabelRunID])
	assert.Equal(t, "2026-08-30T10:00:00Z", labels[LabelStartedAt])
	assert.Len(t, labels, 4)
}

// TestBuildLabels_TimezoneNormalized verifies that non-UTC timestamps are
// converted before being written into the label.
func TestBuildLabels_TimezoneNormalized(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	startedAt := time.Date(2026, 8, 30, 19, 0, 0, 0, jst)

	labels := BuildLabels("anvil", "run", startedAt)

	assert.Equal(t, "2026-08-30T10:00:00Z", labels[LabelStartedAt])
}
