//go:build darwin || linux

package compose

import (
	"os/exec"
	"syscall"
)

// detach moves the process into its own process group so terminal
// signals aimed at the invoker do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
