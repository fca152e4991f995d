//go:build linux

package sandbox

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/unix"
)

// sysProcAttr puts the child in its own process group and, when requested, in
// fresh user, pid and network namespaces. Inside them the child has no network
// interfaces besides an unconfigured loopback, and everything it forks dies
// with it even after setsid.
//
// The mount namespace is shared with the host: the child can read whatever the
// service user can read and write outside its scratch directory wherever the
// service user may. Deployments confine that with a dedicated user or a
// read-only container root.
func sysProcAttr(cfg Config) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{Setpgid: true}
	if cfg.IsolateNetwork {
		uid, gid := os.Getuid(), os.Getgid()
		attr.Cloneflags = unix.CLONE_NEWUSER | unix.CLONE_NEWPID | unix.CLONE_NEWNET
		attr.UidMappings = []syscall.SysProcIDMap{{ContainerID: uid, HostID: uid, Size: 1}}
		attr.GidMappings = []syscall.SysProcIDMap{{ContainerID: gid, HostID: gid, Size: 1}}
		attr.GidMappingsEnableSetgroups = false
	}
	return attr
}

// killProcessGroup kills the child and everything it spawned. It returns
// os.ErrProcessDone when the group is already empty.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}

// findLimitWrapper returns the path of prlimit(1), or "" when it is not
// installed and limits have to be applied after start.
func findLimitWrapper() string {
	path, err := exec.LookPath("prlimit")
	if err != nil {
		return ""
	}
	return path
}

// limitArgs renders l as prlimit(1) options. Soft and hard values are equal so
// the child cannot raise them back.
func limitArgs(l Limits) []string {
	var args []string
	add := func(flag string, value uint64) {
		if value == 0 {
			return
		}
		v := strconv.FormatUint(value, 10)
		args = append(args, "--"+flag+"="+v+":"+v)
	}
	add("cpu", l.CPUSeconds)
	add("as", l.MemoryBytes)
	add("nproc", l.MaxProcesses)
	add("fsize", l.MaxFileBytes)
	add("nofile", l.MaxOpenFiles)
	return append(args, "--core=0:0")
}

// applyLimits sets rlimits on an already running child. It is the fallback
// when prlimit(1) is missing: the interpreter has started by then, so a
// process forked before the call completes keeps the service's limits.
func applyLimits(pid int, l Limits) error {
	set := func(resource int, value uint64, name string) error {
		if value == 0 {
			return nil
		}
		lim := unix.Rlimit{Cur: value, Max: value}
		if err := unix.Prlimit(pid, resource, &lim, nil); err != nil {
			return fmt.Errorf("setting %s limit: %w", name, err)
		}
		return nil
	}
	if err := set(unix.RLIMIT_CPU, l.CPUSeconds, "cpu"); err != nil {
		return err
	}
	if err := set(unix.RLIMIT_AS, l.MemoryBytes, "memory"); err != nil {
		return err
	}
	if err := set(unix.RLIMIT_NPROC, l.MaxProcesses, "process"); err != nil {
		return err
	}
	if err := set(unix.RLIMIT_FSIZE, l.MaxFileBytes, "file size"); err != nil {
		return err
	}
	if err := set(unix.RLIMIT_NOFILE, l.MaxOpenFiles, "open files"); err != nil {
		return err
	}
	lim := unix.Rlimit{}
	if err := unix.Prlimit(pid, unix.RLIMIT_CORE, &lim, nil); err != nil {
		return fmt.Errorf("setting core limit: %w", err)
	}
	return nil
}
