//go:build !linux

package sandbox

import (
	"os/exec"
	"syscall"
)

func sysProcAttr(Config) *syscall.SysProcAttr {
	return nil
}

func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

func findLimitWrapper() string {
	return ""
}

func limitArgs(Limits) []string {
	return nil
}

// applyLimits is a no-op outside Linux; only the wall-clock timeout applies.
func applyLimits(int, Limits) error {
	return nil
}
