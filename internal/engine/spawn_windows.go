//go:build windows

package engine

import "os/exec"

func shellCommand(command string) *exec.Cmd {
	return exec.Command("cmd", "/C", command)
}

func configureSysProcAttr(cmd *exec.Cmd) {}
