package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Executor runs source text with a local interpreter. It is safe for
// concurrent use; each call gets its own scratch directory.
type Executor struct {
	cfg Config
	sem *semaphore.Weighted
	// wrapper is prlimit(1), used to set rlimits before the interpreter starts.
	wrapper string
}

// NewExecutor fills zero fields of cfg with defaults and returns an Executor.
func NewExecutor(cfg Config) *Executor {
	def := DefaultConfig()
	if cfg.Interpreter == "" {
		cfg.Interpreter = def.Interpreter
	}
	if cfg.InterpreterArgs == nil {
		cfg.InterpreterArgs = def.InterpreterArgs
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = def.CheckTimeout
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = def.MaxOutputBytes
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir()
	}

	e := &Executor{cfg: cfg}
	if !cfg.Limits.IsZero() {
		e.wrapper = findLimitWrapper()
		if e.wrapper == "" {
			log.Warn().Msg("prlimit not found, resource limits are applied after the interpreter starts")
		}
	}
	if cfg.MaxConcurrent > 0 {
		e.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}
	return e
}

func (e *Executor) Config() Config {
	return e.cfg
}

// Execute runs source and reports how it ended. The returned error is non-nil
// only for blank source or when ctx ends while waiting for a free slot; every
// failure of the program itself is described by the Outcome.
func (e *Executor) Execute(ctx context.Context, source string) (*Outcome, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	if e.sem != nil {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("waiting for execution slot: %w", err)
		}
		defer e.sem.Release(1)
	}

	id := uuid.NewString()
	start := time.Now()
	outcome := e.run(ctx, id, source)
	outcome.ID = id
	outcome.Duration = time.Since(start)

	log.Debug().
		Str("execID", id).
		Str("status", string(outcome.Status)).
		Int("exitCode", outcome.ExitCode).
		Dur("duration", outcome.Duration).
		Bool("truncated", outcome.Truncated).
		Msg("Execution finished")
	return outcome, nil
}

func (e *Executor) run(ctx context.Context, id, source string) *Outcome {
	workDir, err := os.MkdirTemp(e.cfg.ScratchDir, "exec-"+id+"-")
	if err != nil {
		log.Error().Err(err).Str("execID", id).Msg("Failed to create execution directory")
		return internalOutcome(fmt.Errorf("creating execution directory: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Error().Err(err).Str("execID", id).Str("dir", workDir).Msg("Failed to remove execution directory")
		}
	}()

	if err := os.WriteFile(filepath.Join(workDir, SourceFileName), []byte(source), 0o600); err != nil {
		return internalOutcome(fmt.Errorf("writing source file: %w", err))
	}

	// The timeout is counted from here regardless of the caller's own deadline
	// so a disconnecting client cannot leave a half-reaped child behind.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.Timeout)
	defer cancel()

	interpreter, err := exec.LookPath(e.cfg.Interpreter)
	if err != nil {
		log.Error().Err(err).Str("execID", id).Str("interpreter", e.cfg.Interpreter).Msg("Interpreter not found")
		return internalOutcome(fmt.Errorf("locating interpreter: %w", err))
	}
	name, args := e.commandLine(interpreter)
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = workDir
	cmd.Env = childEnv(workDir)
	cmd.SysProcAttr = sysProcAttr(e.cfg)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	stdout := newBoundedBuffer(e.cfg.MaxOutputBytes)
	stderr := newBoundedBuffer(e.cfg.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Str("execID", id).Str("interpreter", e.cfg.Interpreter).Msg("Failed to start interpreter")
		return internalOutcome(fmt.Errorf("starting interpreter: %w", err))
	}
	if e.wrapper == "" {
		if err := applyLimits(cmd.Process.Pid, e.cfg.Limits); err != nil {
			_ = killProcessGroup(cmd)
			_ = cmd.Wait()
			log.Error().Err(err).Str("execID", id).Msg("Failed to apply resource limits")
			return internalOutcome(err)
		}
	}
	waitErr := cmd.Wait()
	// The interpreter is gone; nothing it left behind in its group may outlive the call.
	if err := killProcessGroup(cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
		log.Warn().Err(err).Str("execID", id).Msg("Failed to kill leftover processes")
	}

	truncated := stdout.Truncated() || stderr.Truncated()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &Outcome{
			Status:    StatusTimeout,
			Output:    stdout.String(),
			Error:     fmt.Sprintf("Execution timed out (%s)", e.cfg.Timeout),
			ExitCode:  -1,
			Truncated: truncated,
		}
	}

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil, errors.Is(waitErr, exec.ErrWaitDelay) && exitCode == 0:
		return &Outcome{
			Status:    StatusSuccess,
			Output:    stdout.String(),
			Truncated: truncated,
		}
	case errors.As(waitErr, &exitErr), errors.Is(waitErr, exec.ErrWaitDelay):
		msg := strings.TrimRight(stderr.String(), "\n")
		if msg == "" {
			msg = fmt.Sprintf("Code execution failed (exit code %d)", exitCode)
		}
		return &Outcome{
			Status:    StatusRuntimeError,
			Output:    stdout.String(),
			Error:     msg,
			ExitCode:  exitCode,
			Truncated: truncated,
		}
	default:
		log.Error().Err(waitErr).Str("execID", id).Msg("Waiting for interpreter failed")
		return internalOutcome(waitErr)
	}
}

// commandLine returns the program and arguments that run the source file,
// wrapped in prlimit(1) when it is available.
func (e *Executor) commandLine(interpreter string) (string, []string) {
	args := append(append([]string{}, e.cfg.InterpreterArgs...), SourceFileName)
	if e.wrapper == "" {
		return interpreter, args
	}
	wrapped := append(limitArgs(e.cfg.Limits), "--", interpreter)
	return e.wrapper, append(wrapped, args...)
}

// Version runs the interpreter with --version. It fails when the interpreter
// is missing or does not answer within the check timeout.
func (e *Executor) Version(ctx context.Context) (string, error) {
	checkCtx, cancel := context.WithTimeout(ctx, e.cfg.CheckTimeout)
	defer cancel()

	out, err := exec.CommandContext(checkCtx, e.cfg.Interpreter, "--version").CombinedOutput()
	if err != nil {
		if errors.Is(checkCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("interpreter %q did not answer within %s", e.cfg.Interpreter, e.cfg.CheckTimeout)
		}
		return "", fmt.Errorf("running %s --version: %w", e.cfg.Interpreter, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func internalOutcome(err error) *Outcome {
	return &Outcome{
		Status:   StatusInternalError,
		Error:    fmt.Sprintf("Execution error: %v", err),
		ExitCode: -1,
	}
}

func childEnv(workDir string) []string {
	return []string{
		"PATH=/usr/local/bin:/usr/bin:/bin",
		"HOME=" + workDir,
		"TMPDIR=" + workDir,
		"LANG=C.UTF-8",
		"PYTHONIOENCODING=utf-8",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONUNBUFFERED=1",
	}
}
