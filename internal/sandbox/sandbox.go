// Package sandbox runs untrusted source text in a short-lived child process.
//
// Every execution gets a private scratch directory holding the source file.
// The directory is removed on every exit path. The child runs in its own
// process group, and the group is killed when the call ends, so nothing it
// spawned outlives Execute. Captured output is bounded.
//
// The child shares the host filesystem: it can read anything the service user
// can read, and write wherever the service user may. Run the service as a
// dedicated user, or in a container with a read-only root, to confine it.
package sandbox

import (
	"errors"
	"time"
)

// SourceFileName is the name of the source file inside the scratch directory.
const SourceFileName = "main.py"

// ErrEmptySource is returned for blank source text. It is a validation error,
// not an execution failure.
var ErrEmptySource = errors.New("source code is empty")

type Status string

const (
	StatusSuccess       Status = "success"
	StatusRuntimeError  Status = "runtime_error"
	StatusTimeout       Status = "timeout"
	StatusInternalError Status = "internal_error"
)

// Outcome is the result of one execution. Output holds stdout on success;
// Error holds the diagnostic otherwise.
type Outcome struct {
	ID        string
	Status    Status
	Output    string
	Error     string
	ExitCode  int
	Duration  time.Duration
	Truncated bool
}

func (o *Outcome) Success() bool {
	return o.Status == StatusSuccess
}

// Config controls how the interpreter is invoked.
type Config struct {
	Interpreter     string
	InterpreterArgs []string
	Timeout         time.Duration
	CheckTimeout    time.Duration
	// ScratchDir is the parent of the per-execution directories. Empty means os.TempDir().
	ScratchDir     string
	MaxOutputBytes int
	// MaxConcurrent bounds simultaneous executions. Zero or less means unbounded.
	MaxConcurrent  int
	Limits         Limits
	IsolateNetwork bool
}

const (
	defaultTimeout        = 10 * time.Second
	defaultCheckTimeout   = 5 * time.Second
	defaultMaxOutputBytes = 64 * 1024
	waitDelay             = 2 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Interpreter:     "python3",
		InterpreterArgs: []string{"-I", "-B"},
		Timeout:         defaultTimeout,
		CheckTimeout:    defaultCheckTimeout,
		MaxOutputBytes:  defaultMaxOutputBytes,
		MaxConcurrent:   4,
		Limits:          DefaultLimits(),
		IsolateNetwork:  true,
	}
}
