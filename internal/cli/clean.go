// Package cli — clean.go implements the "walletdeck clean" command.
//
// Container targets run with --rm, so Docker normally removes their
// containers on exit. Runs that died uncleanly (daemon restart, SIGKILL)
// can leave labelled containers behind; clean finds them via the
// walletdeck.managed-by label and removes them. Running containers are
// skipped unless --force is given.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aoi-kurokawa/walletdeck/internal/docker"
	"github.com/aoi-kurokawa/walletdeck/internal/model"
	"github.com/aoi-kurokawa/walletdeck/internal/ui"
)

// cleanFlags holds the flag values for the clean command.
type cleanFlags struct {
	// force also removes containers that are still running.
	force bool
}

// NewCleanCommand creates the "clean" cobra command.
func NewCleanCommand() *cobra.Command {
	flags := &cleanFlags{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove leftover walletdeck containers",
		Long: `Remove containers left behind by container targets.

Only containers carrying the walletdeck.managed-by label are touched.
Running containers are skipped unless --force is given.

Examples:
  walletdeck clean
  walletdeck clean --force`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Also remove running containers")

	return cmd
}

// runClean is the main logic function for the clean command.
func runClean(ctx context.Context, flags *cleanFlags) error {
	if _, err := initRuntime(); err != nil {
		return err
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = cli.Close() }()

	containers, err := cli.ListManagedContainers(ctx)
	if err != nil {
		return err
	}

	logger.Debug().Int("containers", len(containers)).Msg("found managed containers")

	var removed, skipped []model.ContainerInfo
	for _, c := range containers {
		if c.Status == "running" && !flags.force {
			skipped = append(skipped, c)
			continue
		}
		if err := cli.RemoveContainer(ctx, c.ContainerID, flags.force); err != nil {
			return err
		}
		logger.Info().Str("container", c.ContainerName).Str("target", c.Target).Msg("removed container")
		removed = append(removed, c)
	}

	printCleanResult(removed, skipped)
	return nil
}

// printCleanResult outputs the clean summary in text or JSON format.
func printCleanResult(removed, skipped []model.ContainerInfo) {
	if IsJSONOutput() {
		type resultJSON struct {
			Removed []model.ContainerInfo `json:"removed"`
			Skipped []model.ContainerInfo `json:"skipped"`
		}
		// Append onto empty slices so JSON shows [] instead of null.
		result := resultJSON{
			Removed: append([]model.ContainerInfo{}, removed...),
			Skipped: append([]model.ContainerInfo{}, skipped...),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	plain := isPlain()
	if len(removed) == 0 && len(skipped) == 0 {
		fmt.Println("No leftover containers found.")
		return
	}
	for _, c := range removed {
		ui.Success(os.Stdout, plain, "removed %s (target %s)", c.ContainerName, c.Target)
	}
	for _, c := range skipped {
		ui.Warn(os.Stdout, plain, "skipped running container %s (use --force)", c.ContainerName)
	}
}
