package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/metrics"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/rs/zerolog/log"
)

// DefaultStudentName is stored when a submission carries no student name.
const DefaultStudentName = "Anonymous student"

// TestSubmissionService grades submissions and lists historical results.
type TestSubmissionService interface {
	SubmitTest(ctx context.Context, testID uint, req dto.SubmitTestRequest) (*dto.SubmissionResultDTO, error)
	GetTestResults(ctx context.Context, testID uint) (*dto.TestResultsDTO, error)
}

type testSubmissionService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.TestResultRepository
}

// NewTestSubmissionService creates a new instance of TestSubmissionService.
func NewTestSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.TestResultRepository,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
	}
}

// SubmitTest scores the answers against the current answer key and appends
// exactly one TestResult. The key cannot change between grading and the write.
// Every call creates a new result, even for identical input. If the append
// fails no result is returned.
func (s *testSubmissionService) SubmitTest(ctx context.Context, testID uint, req dto.SubmitTestRequest) (*dto.SubmissionResultDTO, error) {
	if req.Answers == nil {
		return nil, fmt.Errorf("%w: answers are required", ErrValidation)
	}
	timeTaken := 0
	if req.TimeTaken != nil {
		if *req.TimeTaken < 0 {
			return nil, fmt.Errorf("%w: time_taken must not be negative", ErrValidation)
		}
		timeTaken = *req.TimeTaken
	}
	studentName := DefaultStudentName
	if req.StudentName != nil && strings.TrimSpace(*req.StudentName) != "" {
		studentName = strings.TrimSpace(*req.StudentName)
	}

	// 1. Load test
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: test %d", ErrNotFound, testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: failed to load test")
		return nil, fmt.Errorf("%w: loading test %d: %v", ErrInternal, testID, err)
	}
	rawAnswers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding answers: %v", ErrInternal, err)
	}

	// 2. Score against the key and persist in one step
	var (
		grade  Grade
		passed bool
	)
	result, err := s.resultRepo.AppendGraded(ctx, testID, func(questions []model.Question) (*model.TestResult, error) {
		if len(questions) == 0 {
			return nil, fmt.Errorf("%w: test %d", ErrEmptyTest, testID)
		}
		grade = GradeAnswers(questions, req.Answers)
		passed = IsPassed(grade.Percentage, test.PassingScore)
		return &model.TestResult{
			TestID:         test.ID,
			StudentName:    studentName,
			Score:          grade.Correct,
			TotalQuestions: grade.Total,
			Percentage:     grade.Percentage,
			TimeTaken:      timeTaken,
			Answers:        string(rawAnswers),
			CompletedAt:    time.Now().UTC(),
		}, nil
	})
	switch {
	case errors.Is(err, ErrEmptyTest):
		return nil, err
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%w: test %d", ErrNotFound, testID)
	case err != nil:
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: failed to persist test result")
		return nil, fmt.Errorf("%w: saving test result: %v", ErrInternal, err)
	}
	metrics.SubmissionsTotal.WithLabelValues(strconv.FormatBool(passed)).Inc()
	metrics.SubmissionPercentage.Observe(grade.Percentage)

	log.Info().
		Uint("testID", testID).
		Uint("resultID", result.ID).
		Int("score", grade.Correct).
		Int("total", grade.Total).
		Float64("percentage", grade.Percentage).
		Bool("passed", passed).
		Msg("Test submission graded")

	return &dto.SubmissionResultDTO{
		ResultID:        result.ID,
		TestID:          test.ID,
		StudentName:     studentName,
		Score:           grade.Correct,
		TotalQuestions:  grade.Total,
		Percentage:      grade.Percentage,
		TimeTaken:       timeTaken,
		Passed:          passed,
		PassingScore:    test.PassingScore,
		DetailedResults: grade.Details,
		CompletedAt:     result.CompletedAt,
		Message:         resultMessage(passed, grade.Percentage),
	}, nil
}

// GetTestResults returns test metadata and all its results, newest first.
func (s *testSubmissionService) GetTestResults(ctx context.Context, testID uint) (*dto.TestResultsDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: test %d", ErrNotFound, testID)
		}
		return nil, fmt.Errorf("%w: loading test %d: %v", ErrInternal, testID, err)
	}
	questions, err := s.questionRepo.FindByTestID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading questions of test %d: %v", ErrInternal, testID, err)
	}
	results, err := s.resultRepo.FindAllByTestID(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestResults: failed to list results")
		return nil, fmt.Errorf("%w: listing results of test %d: %v", ErrInternal, testID, err)
	}

	resp := &dto.TestResultsDTO{Results: make([]dto.TestResultDTO, 0, len(results))}
	if err := copier.Copy(&resp.Test, test); err != nil {
		return nil, fmt.Errorf("%w: preparing response: %v", ErrInternal, err)
	}
	resp.Test.QuestionsCount = len(questions)

	for _, r := range results {
		item := dto.TestResultDTO{
			ID:             r.ID,
			TestID:         r.TestID,
			StudentName:    r.StudentName,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
			TimeTaken:      r.TimeTaken,
			CompletedAt:    r.CompletedAt,
		}
		if r.Answers != "" {
			if err := json.Unmarshal([]byte(r.Answers), &item.Answers); err != nil {
				log.Warn().Err(err).Uint("resultID", r.ID).Msg("GetTestResults: stored answers are not valid JSON")
			}
		}
		resp.Results = append(resp.Results, item)
	}
	return resp, nil
}
