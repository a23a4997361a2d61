// Package cli — list.go implements the "walletdeck list" command.
//
// The list command displays the configured launch targets — built-in
// defaults merged with the config file — as a text table or JSON array,
// depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured launch targets",
		Long: `List all launch targets available to the menu and to "walletdeck run".

Each target is shown with its name, menu label, kind, the command or
image it launches, and whether it is built in or comes from the config
file.

Examples:
  walletdeck list
  walletdeck list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}

	return cmd
}

// runList is the main logic function for the list command.
func runList() error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	printListResult(cfg.Targets, cfg.Path)
	return nil
}

// printListResult outputs the target list in text or JSON format.
func printListResult(targets []model.Target, configPath string) {
	if IsJSONOutput() {
		printListResultJSON(targets, configPath)
	} else {
		printListResultText(targets, configPath)
	}
}

// listTargetJSON is the JSON output structure for a single target.
type listTargetJSON struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Command string `json:"command"`
	Port    int    `json:"port,omitempty"`
	Source  string `json:"source"`
}

// printListResultJSON outputs the target list as structured JSON under a
// top-level "targets" key.
func printListResultJSON(targets []model.Target, configPath string) {
	type resultJSON struct {
		ConfigFile string           `json:"configFile,omitempty"`
		Targets    []listTargetJSON `json:"targets"`
	}

	result := resultJSON{
		ConfigFile: configPath,
		// Empty slice rather than nil so JSON shows [] instead of null.
		Targets: make([]listTargetJSON, 0, len(targets)),
	}

	for _, t := range targets {
		result.Targets = append(result.Targets, listTargetJSON{
			Name:    t.Name,
			Label:   t.MenuLabel(),
			Kind:    t.Kind.String(),
			Command: FormatLaunchLine(&t),
			Port:    t.Port,
			Source:  targetSource(&t),
		})
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// printListResultText outputs the target list as an aligned text table:
//
//	NAME   LABEL                      KIND       LAUNCHES                      SOURCE
//	web    Launch Web UI              exec       node scripts/start-web-ui.js  builtin
//	anvil  Local chain                container  ghcr.io/foundry-rs/foundry    config
func printListResultText(targets []model.Target, configPath string) {
	if configPath != "" {
		fmt.Printf("Config: %s\n\n", configPath)
	}

	fmt.Printf("%-12s %-30s %-10s %-35s %s\n",
		"NAME", "LABEL", "KIND", "LAUNCHES", "SOURCE")

	for _, t := range targets {
		fmt.Printf("%-12s %-30s %-10s %-35s %s\n",
			t.Name,
			t.MenuLabel(),
			t.Kind.String(),
			FormatLaunchLine(&t),
			targetSource(&t),
		)
	}
}

// FormatLaunchLine renders what a target launches: "command arg..." for
// exec targets, the image (plus args) for container targets.
//
// Exported for testing purposes (tested in list_test.go).
func FormatLaunchLine(t *model.Target) string {
	switch t.Kind {
	case model.KindContainer:
		if len(t.Args) == 0 {
			return t.Image
		}
		return t.Image + " " + strings.Join(t.Args, " ")
	default:
		if len(t.Args) == 0 {
			return t.Command
		}
		return t.Command + " " + strings.Join(t.Args, " ")
	}
}

// targetSource labels where a target definition came from.
func targetSource(t *model.Target) string {
	if t.Builtin {
		return "builtin"
	}
	return "config"
}
