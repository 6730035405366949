//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Detach starts cmd in its own process group so KillProcessGroup also reaches
// the browser and node workers the renderer spawns.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort cleanup; callers also kill the process itself.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
