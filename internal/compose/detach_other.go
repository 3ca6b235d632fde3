//go:build !(darwin || linux)

package compose

import "os/exec"

func detach(cmd *exec.Cmd) {}
