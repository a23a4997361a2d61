package model

import (
	"fmt"
	"regexp"
	"strings"
)

// TargetKind represents how a launch target is executed.
type TargetKind string

const (
	// KindExec runs the target as a local child process via os/exec.
	KindExec TargetKind = "exec"

	// KindContainer runs the target inside a Docker container
	// (docker run --rm with walletdeck labels attached).
	KindContainer TargetKind = "container"
)

// String returns the string representation of TargetKind.
func (k TargetKind) String() string {
	return string(k)
}

// IsValid checks whether the TargetKind value is one of the
// predefined valid kinds.
func (k TargetKind) IsValid() bool {
	switch k {
	case KindExec, KindContainer:
		return true
	default:
		return false
	}
}

// ParseTargetKind converts a string to a TargetKind.
// An empty string defaults to KindExec, since plain process targets are
// the common case and config files rarely spell the kind out.
func ParseTargetKind(s string) (TargetKind, error) {
	if s == "" {
		return KindExec, nil
	}
	kind := TargetKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid target kind: %q (valid: exec, container)", s)
	}
	return kind, nil
}

// Target represents one launchable workspace component. The interactive
// menu is built from the ordered list of targets plus a final Exit entry;
// `walletdeck run <name>` launches a target directly.
//
// Targets are assembled by the config package: built-in defaults first,
// then entries from walletdeck.jsonc/.yaml merged over them by name.
type Target struct {
	// Name is the unique identifier used with `walletdeck run <name>`.
	// Must contain only alphanumeric characters and hyphens.
	Name string `json:"name" yaml:"name"`

	// Label is the human-readable menu entry text.
	Label string `json:"label" yaml:"label"`

	// Kind selects the launch mechanism (exec or container).
	Kind TargetKind `json:"kind" yaml:"kind"`

	// Command is the executable to spawn. Required for exec targets.
	Command string `json:"command,omitempty" yaml:"command"`

	// Args are the arguments passed to Command (exec) or appended after
	// the image name (container).
	Args []string `json:"args,omitempty" yaml:"args"`

	// Dir is the working directory for the child process.
	// Empty means the launcher's own working directory.
	Dir string `json:"dir,omitempty" yaml:"dir"`

	// Image is the Docker image to run. Required for container targets.
	Image string `json:"image,omitempty" yaml:"image"`

	// Env holds additional environment variables for the child.
	// These take precedence over EnvFile entries and the inherited
	// environment.
	Env map[string]string `json:"env,omitempty" yaml:"env"`

	// EnvFile is an optional dotenv file whose entries are added to the
	// child environment before Env is applied.
	EnvFile string `json:"envFile,omitempty" yaml:"envFile"`

	// InstallHint is the remedy suggested when the target fails to spawn,
	// e.g. "npm install". Shown verbatim in the error message.
	InstallHint string `json:"installHint,omitempty" yaml:"installHint"`

	// Port is the TCP port the component binds once launched, when known.
	// Used only by the doctor command to warn about ports already in use;
	// 0 disables the check.
	Port int `json:"port,omitempty" yaml:"port"`

	// Builtin marks targets that ship with the launcher rather than
	// coming from a config file.
	Builtin bool `json:"builtin" yaml:"-"`
}

// Validate checks that the target's field values are coherent for its kind.
func (t *Target) Validate() error {
	if err := ValidateTargetName(t.Name); err != nil {
		return err
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("target %q: invalid kind %q (valid: exec, container)", t.Name, t.Kind)
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("target %q: port %d out of range (1-65535)", t.Name, t.Port)
	}
	switch t.Kind {
	case KindExec:
		if t.Command == "" {
			return fmt.Errorf("target %q: command is required for exec targets", t.Name)
		}
	case KindContainer:
		if t.Image == "" {
			return fmt.Errorf("target %q: image is required for container targets", t.Name)
		}
	}
	return nil
}

// MenuLabel returns the text shown in the interactive menu, falling back
// to the target name when no label is configured.
func (t *Target) MenuLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// nameRegex validates target names: alphanumeric + hyphens only,
// must start and end with alphanumeric.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateTargetName checks if the given name is a valid launch target name.
// Valid names contain only alphanumeric characters and hyphens,
// and must start/end with an alphanumeric character.
func ValidateTargetName(name string) error {
	if name == "" {
		return fmt.Errorf("target name must not be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid target name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// ContainerInfo holds runtime information about a Docker container left
// behind by a container target run. This data is fetched from the Docker
// API by the clean command, never persisted.
type ContainerInfo struct {
	// ContainerID is the unique Docker container identifier.
	ContainerID string `json:"containerId"`

	// ContainerName is the human-readable Docker container name.
	ContainerName string `json:"containerName"`

	// Target is the launch target that created the container, read from
	// the walletdeck.target label.
	Target string `json:"target"`

	// RunID identifies the individual launch, read from the
	// walletdeck.run-id label.
	RunID string `json:"runId"`

	// Status is the Docker container status (e.g. "running", "exited").
	Status string `json:"status"`

	// Labels is the full set of Docker labels on the container.
	Labels map[string]string `json:"labels,omitempty"`
}

// ExitCode defines the walletdeck CLI exit codes. These codes allow
// scripts and CI systems to programmatically determine the outcome of a
// command. When a launched child process exits nonzero, its code is
// propagated verbatim and takes precedence over the named codes below.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, including
	// a graceful menu exit via the Exit entry, stdin EOF, or a signal
	// received at the prompt.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigInvalid indicates the config file could not be read
	// or failed validation.
	ExitConfigInvalid ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitTargetNotFound indicates the named launch target does not exist.
	ExitTargetNotFound ExitCode = 4

	// ExitSpawnFailed indicates the child process could not be started
	// (missing binary, missing script, permission error).
	ExitSpawnFailed ExitCode = 5

	// ExitDoctorFailed indicates one or more doctor checks failed.
	ExitDoctorFailed ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ChildExitError creates a CLIError whose code is the exit status of a
// launched child process. The launcher terminates with the child's code
// verbatim, so the ExitCode here is not one of the named constants.
func ChildExitError(target string, code int, hint string) *CLIError {
	msg := fmt.Sprintf("%s exited with status %d", target, code)
	if hint != "" {
		msg += fmt.Sprintf(" (if dependencies are missing, try `%s`)", hint)
	}
	return &CLIError{Code: ExitCode(code), Message: msg}
}
