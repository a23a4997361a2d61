package launch

import (
	"errors"
	"os/exec"
	"syscall"
)

// ExitStatus translates the error returned by exec.Cmd.Wait into the
// child's exit code.
//
// A nil error means the child exited 0. An exec.ExitError carries the
// wait status; a child terminated by a signal maps to the shell
// convention 128+signal so the status still fits in an exit code. Any
// other error (I/O failure, wait already done) is returned as-is because
// no child status exists to report.
func ExitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}
