package sandbox

import "fmt"

// Limits are per-process resource ceilings applied to the child. A zero field
// means the limit is not set.
type Limits struct {
	CPUSeconds   uint64
	MemoryBytes  uint64
	MaxProcesses uint64
	MaxFileBytes uint64
	MaxOpenFiles uint64
}

func DefaultLimits() Limits {
	return Limits{
		CPUSeconds:   10,
		MemoryBytes:  256 * 1024 * 1024,
		MaxProcesses: 32,
		MaxFileBytes: 1024 * 1024,
		MaxOpenFiles: 64,
	}
}

func (l Limits) IsZero() bool {
	return l == Limits{}
}

func (l Limits) String() string {
	return fmt.Sprintf("cpu=%ds mem=%dB nproc=%d fsize=%dB nofile=%d",
		l.CPUSeconds, l.MemoryBytes, l.MaxProcesses, l.MaxFileBytes, l.MaxOpenFiles)
}
