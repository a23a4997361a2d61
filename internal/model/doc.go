// Package model defines the domain types and value objects for the
// walletdeck CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is Target — one launchable workspace component (the
// wallet Web UI, the CLI wallet manager, the contract-test runner, or any
// target added through the config file).
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
