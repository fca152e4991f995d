package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserTestService serves the student-facing test catalog. Answer keys never
// leave this service.
type UserTestService interface {
	GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error)
	GetTestDetails(ctx context.Context, testID uint) (*dto.TestDetailDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllActiveWithQuestionCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("%w: fetching tests: %v", ErrInternal, err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:             twc.Test.ID,
			Title:          twc.Test.Title,
			Description:    twc.Test.Description,
			TimeLimit:      twc.Test.TimeLimit,
			PassingScore:   twc.Test.PassingScore,
			IsActive:       twc.Test.IsActive,
			QuestionsCount: twc.QuestionCount,
			CreatedAt:      twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID uint) (*dto.TestDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, lookupErr(err, "test", testID)
	}

	var resp dto.TestDetailDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestDetailDTO")
		return nil, fmt.Errorf("%w: preparing test details response: %v", ErrInternal, err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionPublicDTO{}
	}
	resp.QuestionsCount = len(test.Questions)
	return &resp, nil
}
