package repository

import (
	"context"

	"github.com/lshigami/pycourse/internal/model"
	"gorm.io/gorm"
)

type LectureRepository interface {
	Create(ctx context.Context, lecture *model.Lecture) error
	FindByID(ctx context.Context, id uint) (*model.Lecture, error)
	FindAll(ctx context.Context) ([]model.Lecture, error)
	Update(ctx context.Context, lecture *model.Lecture) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type lectureRepository struct {
	db *gorm.DB
}

func NewLectureRepository(db *gorm.DB) LectureRepository {
	return &lectureRepository{db: db}
}

func (r *lectureRepository) Create(ctx context.Context, lecture *model.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

func (r *lectureRepository) FindByID(ctx context.Context, id uint) (*model.Lecture, error) {
	var lecture model.Lecture
	if err := r.db.WithContext(ctx).First(&lecture, id).Error; err != nil {
		return nil, translate(err)
	}
	return &lecture, nil
}

func (r *lectureRepository) FindAll(ctx context.Context) ([]model.Lecture, error) {
	var lectures []model.Lecture
	if err := r.db.WithContext(ctx).Order("order_in_list ASC, id ASC").Find(&lectures).Error; err != nil {
		return nil, err
	}
	return lectures, nil
}

func (r *lectureRepository) Update(ctx context.Context, lecture *model.Lecture) error {
	return r.db.WithContext(ctx).Save(lecture).Error
}

func (r *lectureRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Lecture{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lectureRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lecture{}).Count(&n).Error
	return n, err
}
