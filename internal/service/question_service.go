package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionService manages questions of existing tests. A question whose test
// already has results is frozen: its answer key was used for grading.
type QuestionService interface {
	AddQuestionToTest(ctx context.Context, testID uint, req dto.QuestionCreateDTO) (*dto.QuestionDTO, error)
	UpdateQuestion(ctx context.Context, id uint, req dto.QuestionUpdateDTO) (*dto.QuestionDTO, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type questionService struct {
	repo     repository.QuestionRepository
	testRepo repository.TestRepository
}

func NewQuestionService(repo repository.QuestionRepository, testRepo repository.TestRepository) QuestionService {
	return &questionService{repo: repo, testRepo: testRepo}
}

func (s *questionService) AddQuestionToTest(ctx context.Context, testID uint, req dto.QuestionCreateDTO) (*dto.QuestionDTO, error) {
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Invalid TestID provided for question creation")
		return nil, lookupErr(err, "test", testID)
	}
	if err := validateQuestionCreate(req); err != nil {
		return nil, err
	}

	question := model.Question{TestID: testID}
	if err := copier.Copy(&question, &req); err != nil {
		return nil, fmt.Errorf("%w: preparing question: %v", ErrInternal, err)
	}
	question.TestID = testID

	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to add question to test")
		return nil, fmt.Errorf("%w: creating question: %v", ErrInternal, err)
	}
	return toQuestionDTO(&question)
}

func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req dto.QuestionUpdateDTO) (*dto.QuestionDTO, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "question", id)
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.OptionA != nil {
		question.OptionA = *req.OptionA
	}
	if req.OptionB != nil {
		question.OptionB = *req.OptionB
	}
	if req.OptionC != nil {
		question.OptionC = *req.OptionC
	}
	if req.OptionD != nil {
		question.OptionD = *req.OptionD
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		question.Explanation = *req.Explanation
	}
	if req.OrderInTest != nil {
		question.OrderInTest = *req.OrderInTest
	}
	if question.QuestionText == "" {
		return nil, fmt.Errorf("%w: question_text must not be empty", ErrValidation)
	}
	if !model.IsOptionLabel(question.CorrectAnswer) {
		return nil, fmt.Errorf("%w: correct_answer must be one of A, B, C, D", ErrValidation)
	}
	if question.OrderInTest < 0 {
		return nil, fmt.Errorf("%w: order must not be negative", ErrValidation)
	}

	if err := s.repo.UpdateUngraded(ctx, question); err != nil {
		if errors.Is(err, repository.ErrGraded) || errors.Is(err, repository.ErrNotFound) {
			return nil, writeErr(err, question)
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("%w: updating question %d: %v", ErrInternal, id, err)
	}
	return toQuestionDTO(question)
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "question", id)
	}
	if err := s.repo.DeleteUngraded(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGraded) || errors.Is(err, repository.ErrNotFound) {
			return writeErr(err, question)
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return fmt.Errorf("%w: deleting question %d: %v", ErrInternal, id, err)
	}
	return nil
}

// writeErr maps a refused question write to a service error kind.
func writeErr(err error, q *model.Question) error {
	if errors.Is(err, repository.ErrGraded) {
		return fmt.Errorf("%w: question %d belongs to test %d which already has results", ErrConflict, q.ID, q.TestID)
	}
	return fmt.Errorf("%w: question %d", ErrNotFound, q.ID)
}

func toQuestionDTO(q *model.Question) (*dto.QuestionDTO, error) {
	var resp dto.QuestionDTO
	if err := copier.Copy(&resp, q); err != nil {
		return nil, fmt.Errorf("%w: preparing response: %v", ErrInternal, err)
	}
	return &resp, nil
}
