package engine

import (
	"errors"
	"io"
	"os/exec"
)

// State is the lifecycle state of a managed process.
type State int

const (
	// StatePending means the process has been constructed but not started.
	StatePending State = iota
	// StateRunning means the underlying OS process is alive.
	StateRunning
	// StateExited means the process terminated on its own.
	StateExited
	// StateKilled means the process was terminated explicitly by Stop.
	StateKilled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	}
	return "unknown"
}

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateExited || s == StateKilled
}

// Process wraps a single spawned OS process. The handle is owned exclusively
// by the Manager, which performs every state transition and guarantees the
// process is reaped exactly once.
type Process struct {
	Name    string
	Command string

	cmd       *exec.Cmd
	state     State
	exitCode  int
	killReq   bool
	logCloser io.Closer
}

// PID returns the OS process identifier, or zero before spawn.
func (p *Process) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// State returns the last lifecycle state recorded by the Manager. Callers
// outside the Manager's reap paths must treat it as advisory.
func (p *Process) State() State { return p.state }

// ExitCode returns the recorded exit code. Only meaningful once the process
// has reached a terminal state; killed processes report the signal-derived
// code (-1).
func (p *Process) ExitCode() int { return p.exitCode }

// exitCode translates a Wait result into the observed exit code.
func exitCodeFromWait(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
