package repository

import (
	"context"

	"github.com/lshigami/pycourse/internal/model"
	"gorm.io/gorm"
)

// GradeFunc builds the result of a submission from the answer key of its test.
type GradeFunc func(questions []model.Question) (*model.TestResult, error)

// TestResultRepository is append-only. Results are never updated or deleted.
type TestResultRepository interface {
	AppendGraded(ctx context.Context, testID uint, grade GradeFunc) (*model.TestResult, error)
	FindAllByTestID(ctx context.Context, testID uint) ([]model.TestResult, error)
	Count(ctx context.Context) (int64, error)
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

// AppendGraded loads the questions of a test, lets grade score them and
// inserts the result, all in one transaction with the test row share-locked.
// ErrNotFound means the test does not exist. When grade or the insert fails
// nothing is stored and the error is returned as is.
func (r *testResultRepository) AppendGraded(ctx context.Context, testID uint, grade GradeFunc) (*model.TestResult, error) {
	var result *model.TestResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTest(tx, testID, lockShare); err != nil {
			return err
		}
		var questions []model.Question
		if err := tx.Where("test_id = ?", testID).Order("order_in_test ASC, id ASC").Find(&questions).Error; err != nil {
			return err
		}
		res, err := grade(questions)
		if err != nil {
			return err
		}
		if err := tx.Create(res).Error; err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindAllByTestID lists results newest first.
func (r *testResultRepository) FindAllByTestID(ctx context.Context, testID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("completed_at DESC, id DESC").
		Find(&results).Error
	return results, err
}

func (r *testResultRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TestResult{}).Count(&n).Error
	return n, err
}
