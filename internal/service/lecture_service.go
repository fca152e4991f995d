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

type LectureService interface {
	GetAllLectures(ctx context.Context) ([]dto.LectureDTO, error)
	GetLecture(ctx context.Context, id uint) (*dto.LectureDTO, error)
	CreateLecture(ctx context.Context, req dto.LectureCreateDTO) (*dto.LectureDTO, error)
	UpdateLecture(ctx context.Context, id uint, req dto.LectureUpdateDTO) (*dto.LectureDTO, error)
	DeleteLecture(ctx context.Context, id uint) error
}

type lectureService struct {
	repo repository.LectureRepository
}

func NewLectureService(repo repository.LectureRepository) LectureService {
	return &lectureService{repo: repo}
}

func (s *lectureService) GetAllLectures(ctx context.Context) ([]dto.LectureDTO, error) {
	lectures, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list lectures")
		return nil, fmt.Errorf("%w: listing lectures: %v", ErrInternal, err)
	}
	resp := make([]dto.LectureDTO, 0, len(lectures))
	if err := copier.Copy(&resp, &lectures); err != nil {
		return nil, fmt.Errorf("%w: preparing response: %v", ErrInternal, err)
	}
	return resp, nil
}

func (s *lectureService) GetLecture(ctx context.Context, id uint) (*dto.LectureDTO, error) {
	lecture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "lecture", id)
	}
	return toLectureDTO(lecture)
}

func (s *lectureService) CreateLecture(ctx context.Context, req dto.LectureCreateDTO) (*dto.LectureDTO, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	lecture := model.Lecture{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		OrderInList: req.OrderInList,
	}
	if err := s.repo.Create(ctx, &lecture); err != nil {
		log.Error().Err(err).Msg("Failed to create lecture")
		return nil, fmt.Errorf("%w: creating lecture: %v", ErrInternal, err)
	}
	return toLectureDTO(&lecture)
}

// UpdateLecture applies only the fields present in req.
func (s *lectureService) UpdateLecture(ctx context.Context, id uint, req dto.LectureUpdateDTO) (*dto.LectureDTO, error) {
	lecture, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "lecture", id)
	}
	if req.Title != nil {
		lecture.Title = *req.Title
	}
	if req.Description != nil {
		lecture.Description = *req.Description
	}
	if req.Content != nil {
		lecture.Content = *req.Content
	}
	if req.OrderInList != nil {
		lecture.OrderInList = *req.OrderInList
	}
	if lecture.Title == "" || lecture.Content == "" {
		return nil, fmt.Errorf("%w: title and content must not be empty", ErrValidation)
	}
	if err := s.repo.Update(ctx, lecture); err != nil {
		log.Error().Err(err).Uint("lectureID", id).Msg("Failed to update lecture")
		return nil, fmt.Errorf("%w: updating lecture %d: %v", ErrInternal, id, err)
	}
	return toLectureDTO(lecture)
}

func (s *lectureService) DeleteLecture(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupErr(err, "lecture", id)
	}
	return nil
}

func toLectureDTO(l *model.Lecture) (*dto.LectureDTO, error) {
	var resp dto.LectureDTO
	if err := copier.Copy(&resp, l); err != nil {
		return nil, fmt.Errorf("%w: preparing response: %v", ErrInternal, err)
	}
	return &resp, nil
}
