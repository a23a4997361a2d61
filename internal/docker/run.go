// run.go builds the `docker run` invocation for container launch targets
// and implements discovery/removal of the labelled containers they leave
// behind.
//
// Container targets are executed through the docker CLI rather than the
// SDK's ContainerCreate + ContainerAttach workflow, so a container target
// behaves exactly like an exec target from the launcher's point of view:
// inherited stdio, signal delivery through the terminal's process group,
// and the child's exit code reported by exec.Cmd.Wait. `docker run`
// forwards the container's exit code as its own.
package docker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/google/uuid"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// RunSpec describes one container launch. It is constructed by the launch
// package from a container-kind target plus per-launch values.
type RunSpec struct {
	// Target is the launch target name, recorded in the container labels.
	Target string

	// Image is the Docker image to run.
	Image string

	// Args are appended after the image name (the container command).
	Args []string

	// Env holds environment variables passed with --env.
	Env map[string]string

	// Interactive adds -i/-t so the container shares the controlling
	// terminal. Set when stdin is a TTY.
	Interactive bool

	// RunID uniquely identifies this launch. Assigned by NewRunSpec.
	RunID string

	// StartedAt is the launch timestamp recorded in the labels.
	StartedAt time.Time
}

// NewRunSpec builds a RunSpec for the given container target with a fresh
// run ID. env is the resolved environment for the container (the target's
// dotenv file entries overlaid with its inline env map, see
// config.TargetEnv); it is taken as given rather than read from the
// target so this package stays free of config parsing.
func NewRunSpec(t *model.Target, env map[string]string, interactive bool) RunSpec {
	return RunSpec{
		Target:      t.Name,
		Image:       t.Image,
		Args:        t.Args,
		Env:         env,
		Interactive: interactive,
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
	}
}

// ContainerName returns the container name for this run, derived from the
// target name and a run ID prefix so repeated launches never collide.
func (s RunSpec) ContainerName() string {
	short := s.RunID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("walletdeck-%s-%s", s.Target, short)
}

// RunArgs builds the full argument list for `docker run`, starting after
// the "docker" binary itself. The --rm flag removes the container when it
// exits; the clean command only has to deal with runs that died without
// Docker getting the chance to honor it.
func (s RunSpec) RunArgs() []string {
	args := []string{"run", "--rm", "--name", s.ContainerName()}

	if s.Interactive {
		args = append(args, "-i", "-t")
	}

	for _, kv := range labelArgs(BuildLabels(s.Target, s.RunID, s.StartedAt)) {
		args = append(args, "--label", kv)
	}

	envKeys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)
	for _, k := range envKeys {
		args = append(args, "--env", k+"="+s.Env[k])
	}

	args = append(args, s.Image)
	args = append(args, s.Args...)
	return args
}

// labelArgs flattens a label map into sorted "key=value" strings so the
// generated command line is deterministic.
func labelArgs(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+labels[k])
	}
	return out
}

// ListManagedContainers queries the Docker daemon for all containers with
// the "walletdeck.managed-by=walletdeck" label, including stopped ones.
// Docker performs the label filtering server-side.
func (c *Client) ListManagedContainers(ctx context.Context) ([]model.ContainerInfo, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
	)

	containers, err := c.inner.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker containers",
			err,
		)
	}

	result := make([]model.ContainerInfo, 0, len(containers))
	for _, c := range containers {
		result = append(result, containerToInfo(c))
	}

	// Sort by name for stable clean output.
	sort.Slice(result, func(i, j int) bool {
		return result[i].ContainerName < result[j].ContainerName
	})

	return result, nil
}

// containerToInfo converts a Docker API Container struct to the domain
// ContainerInfo. Docker returns names with a leading "/" that is stripped
// for display.
func containerToInfo(c types.Container) model.ContainerInfo {
	name := ""
	if len(c.Names) > 0 {
		name = c.Names[0]
		if len(name) > 0 && name[0] == '/' {
			name = name[1:]
		}
	}

	return model.ContainerInfo{
		ContainerID:   c.ID,
		ContainerName: name,
		Target:        c.Labels[LabelTarget],
		RunID:         c.Labels[LabelRunID],
		Status:        c.State,
		Labels:        c.Labels,
	}
}

// RemoveContainer removes a container by ID. With force set, a running
// container is killed first.
func (c *Client) RemoveContainer(ctx context.Context, containerID string, force bool) error {
	err := c.inner.ContainerRemove(ctx, containerID, container.RemoveOptions{
		Force: force,
	})
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove container %q", containerID),
			err,
		)
	}
	return nil
}
