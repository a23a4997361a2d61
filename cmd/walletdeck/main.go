// Package main is the entry point for the walletdeck CLI.
//
// This binary launches the components of the wallet development
// workspace (Web UI, CLI wallet manager, contract tests) from an
// interactive menu or via subcommands. It delegates all functionality to
// the internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by GoReleaser during the release process. During development, they
// default to "dev", "none", and "unknown" respectively.
package main

import (
	"github.com/aoi-kurokawa/walletdeck/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time
// via ldflags (see .goreleaser.yml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package, keeping
	// main.go decoupled from the CLI framework.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Create the root command with all subcommands registered, then
	// execute it. Execute handles error formatting and exit codes —
	// including propagating a launched child's exit code verbatim.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
