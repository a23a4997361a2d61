// Package docker provides Docker Engine API wrappers for walletdeck's
// container launch targets.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Building the `docker run` argument list for container targets,
//     including the walletdeck.* labels that mark containers as ours
//   - Discovery and removal of stray labelled containers (the clean
//     command)
//   - Daemon reachability checks (the doctor command)
//
// Container targets are launched through the docker CLI rather than the
// SDK so they share the inherited-stdio and exit-code path of every other
// launch; the SDK (github.com/docker/docker/client, with version
// negotiation enabled) backs the non-interactive management operations.
package docker
