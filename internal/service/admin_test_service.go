package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeLimit    = 30
	defaultPassingScore = 70
)

type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestAdminDetailDTO, error)
	GetTest(ctx context.Context, testID uint) (*dto.TestAdminDetailDTO, error)
	UpdateTest(ctx context.Context, testID uint, req dto.TestUpdateDTO) (*dto.TestAdminDetailDTO, error)
	DeleteTest(ctx context.Context, testID uint) error
	GetStats(ctx context.Context) (*dto.StatsDTO, error)
}

type adminTestService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.TestResultRepository
	lectureRepo  repository.LectureRepository
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.TestResultRepository,
	lectureRepo repository.LectureRepository,
) AdminTestService {
	return &adminTestService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		lectureRepo:  lectureRepo,
	}
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestAdminDetailDTO, error) {
	testModel := model.Test{
		Title:        req.Title,
		Description:  req.Description,
		TimeLimit:    defaultTimeLimit,
		PassingScore: defaultPassingScore,
		IsActive:     true,
	}
	if req.TimeLimit != nil {
		testModel.TimeLimit = *req.TimeLimit
	}
	if req.PassingScore != nil {
		testModel.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		testModel.IsActive = *req.IsActive
	}
	if err := validateTest(&testModel); err != nil {
		return nil, err
	}

	for i, qDto := range req.Questions {
		if err := validateQuestionCreate(qDto); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		var questionModel model.Question
		if err := copier.Copy(&questionModel, &qDto); err != nil {
			return nil, fmt.Errorf("%w: preparing question %d: %v", ErrInternal, i+1, err)
		}
		testModel.Questions = append(testModel.Questions, questionModel)
	}

	if err := s.testRepo.Create(ctx, &testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("%w: database error creating test: %v", ErrInternal, err)
	}
	log.Info().Uint("testID", testModel.ID).Int("questions", len(testModel.Questions)).Msg("Test created")

	return s.GetTest(ctx, testModel.ID)
}

func (s *adminTestService) GetTest(ctx context.Context, testID uint) (*dto.TestAdminDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, lookupErr(err, "test", testID)
	}
	var resp dto.TestAdminDetailDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestAdminDetailDTO")
		return nil, fmt.Errorf("%w: preparing response data: %v", ErrInternal, err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionDTO{}
	}
	resp.QuestionsCount = len(test.Questions)
	return &resp, nil
}

func (s *adminTestService) UpdateTest(ctx context.Context, testID uint, req dto.TestUpdateDTO) (*dto.TestAdminDetailDTO, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, lookupErr(err, "test", testID)
	}
	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.TimeLimit != nil {
		test.TimeLimit = *req.TimeLimit
	}
	if req.PassingScore != nil {
		test.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
	if err := validateTest(test); err != nil {
		return nil, err
	}
	if err := s.testRepo.Update(ctx, test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to update test")
		return nil, fmt.Errorf("%w: updating test %d: %v", ErrInternal, testID, err)
	}
	return s.GetTest(ctx, testID)
}

func (s *adminTestService) DeleteTest(ctx context.Context, testID uint) error {
	if err := s.testRepo.Delete(ctx, testID); err != nil {
		return lookupErr(err, "test", testID)
	}
	log.Info().Uint("testID", testID).Msg("Test deleted")
	return nil
}

func (s *adminTestService) GetStats(ctx context.Context) (*dto.StatsDTO, error) {
	var stats dto.StatsDTO
	var err error
	if stats.LecturesCount, err = s.lectureRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: counting lectures: %v", ErrInternal, err)
	}
	if stats.TestsCount, err = s.testRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: counting tests: %v", ErrInternal, err)
	}
	if stats.QuestionsCount, err = s.questionRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: counting questions: %v", ErrInternal, err)
	}
	if stats.ResultsCount, err = s.resultRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("%w: counting results: %v", ErrInternal, err)
	}
	return &stats, nil
}

func validateTest(t *model.Test) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if t.TimeLimit < 1 {
		return fmt.Errorf("%w: time_limit must be at least 1 minute, got %d", ErrValidation, t.TimeLimit)
	}
	if t.PassingScore < 0 || t.PassingScore > 100 {
		return fmt.Errorf("%w: passing_score must be between 0 and 100, got %d", ErrValidation, t.PassingScore)
	}
	return nil
}

func validateQuestionCreate(q dto.QuestionCreateDTO) error {
	if q.QuestionText == "" {
		return fmt.Errorf("%w: question_text is required", ErrValidation)
	}
	if !model.IsOptionLabel(q.CorrectAnswer) {
		return fmt.Errorf("%w: correct_answer must be one of A, B, C, D, got %q", ErrValidation, q.CorrectAnswer)
	}
	if q.OrderInTest < 0 {
		return fmt.Errorf("%w: order must not be negative", ErrValidation)
	}
	return nil
}
