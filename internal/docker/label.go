package docker

import (
	"time"
)

// Label key constants define the Docker label keys attached to containers
// started for container launch targets. The labels are what lets the
// clean command tell walletdeck's containers apart from everything else
// on the host — there is no external state file.
//
// All keys share the "walletdeck." prefix to avoid collisions with labels
// set by other tools (Docker Compose, VS Code, etc.).
const (
	// LabelPrefix is the common prefix for all walletdeck labels.
	LabelPrefix = "walletdeck."

	// LabelManagedBy identifies containers started by walletdeck.
	// Key: "walletdeck.managed-by", Value: always "walletdeck".
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelTarget stores the launch target name that started the container.
	// Key: "walletdeck.target", Value: target name (e.g. "anvil").
	LabelTarget = LabelPrefix + "target"

	// LabelRunID stores the unique identifier of the individual launch.
	// Key: "walletdeck.run-id", Value: a UUID generated per launch.
	LabelRunID = LabelPrefix + "run-id"

	// LabelStartedAt stores the launch timestamp.
	// Key: "walletdeck.started-at", Value: RFC3339 formatted timestamp.
	LabelStartedAt = LabelPrefix + "started-at"
)

// ManagedByValue is the constant value for the LabelManagedBy label.
const ManagedByValue = "walletdeck"

// BuildLabels constructs the Docker label map applied to a container
// target's container. UTC timestamps keep the label value independent of
// the host timezone.
func BuildLabels(targetName, runID string, startedAt time.Time) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelTarget:    targetName,
		LabelRunID:     runID,
		LabelStartedAt: startedAt.UTC().Format(time.RFC3339),
	}
}
