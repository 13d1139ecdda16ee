//go:build !windows

package engine

import (
	"errors"
	"syscall"
)

// signalStop requests graceful termination of the whole process group. A
// group that is already gone is treated as already-terminal.
func (p *Process) signalStop() error {
	return p.signalGroup(syscall.SIGTERM)
}

// signalKill terminates the process group unconditionally.
func (p *Process) signalKill() error {
	return p.signalGroup(syscall.SIGKILL)
}

func (p *Process) signalGroup(sig syscall.Signal) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-p.cmd.Process.Pid, sig); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
