package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/metrics"
	"github.com/lshigami/pycourse/internal/sandbox"
	"github.com/rs/zerolog/log"
)

// CodeRunner is the part of sandbox.Executor the compiler service needs.
type CodeRunner interface {
	Execute(ctx context.Context, source string) (*sandbox.Outcome, error)
	Version(ctx context.Context) (string, error)
}

type CompilerService interface {
	Execute(ctx context.Context, req dto.ExecuteRequest) (*dto.ExecuteResponse, error)
	Check(ctx context.Context) *dto.CompilerCheckResponse
}

type compilerService struct {
	runner CodeRunner
}

func NewCompilerService(runner CodeRunner) CompilerService {
	return &compilerService{runner: runner}
}

// Execute runs the submitted code. Program failures are reported in the
// response, not as an error; the error is reserved for bad input and for the
// service being unable to run anything at all.
func (s *compilerService) Execute(ctx context.Context, req dto.ExecuteRequest) (*dto.ExecuteResponse, error) {
	metrics.ActiveExecutions.Inc()
	defer metrics.ActiveExecutions.Dec()

	outcome, err := s.runner.Execute(ctx, req.Code)
	if err != nil {
		if errors.Is(err, sandbox.ErrEmptySource) {
			return nil, fmt.Errorf("%w: code is required", ErrValidation)
		}
		log.Warn().Err(err).Msg("Execute: no execution slot")
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	metrics.ExecutionsTotal.WithLabelValues(string(outcome.Status)).Inc()
	metrics.ExecutionDuration.Observe(float64(outcome.Duration.Milliseconds()))
	if outcome.Truncated {
		metrics.TruncatedOutputs.Inc()
	}

	resp := &dto.ExecuteResponse{
		Success:    outcome.Success(),
		Status:     string(outcome.Status),
		DurationMs: outcome.Duration.Milliseconds(),
		Truncated:  outcome.Truncated,
	}
	if outcome.Success() {
		output := outcome.Output
		resp.Output = &output
	} else {
		resp.Error = outcome.Error
	}

	log.Info().
		Str("execID", outcome.ID).
		Str("status", resp.Status).
		Int("exitCode", outcome.ExitCode).
		Int64("durationMs", resp.DurationMs).
		Msg("Code executed")
	return resp, nil
}

func (s *compilerService) Check(ctx context.Context) *dto.CompilerCheckResponse {
	version, err := s.runner.Version(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Check: interpreter unavailable")
		return &dto.CompilerCheckResponse{
			Success: false,
			Error:   "Python interpreter is not available",
		}
	}
	return &dto.CompilerCheckResponse{
		Success: true,
		Version: version,
		Message: "Python interpreter is available",
	}
}
