package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func resultAt(testID uint, name string, at time.Time) repository.GradeFunc {
	return func(questions []model.Question) (*model.TestResult, error) {
		return &model.TestResult{
			TestID:         testID,
			StudentName:    name,
			TotalQuestions: len(questions),
			CompletedAt:    at,
		}, nil
	}
}

func TestAppendGradedPassesAnswerKey(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTestResultRepository(db)
	test := seedTest(t, db, model.Test{Title: "T", TimeLimit: 5, PassingScore: 60, IsActive: true},
		question("second", "B", 2), question("first", "A", 1))

	var seen []string
	res, err := repo.AppendGraded(context.Background(), test.ID, func(questions []model.Question) (*model.TestResult, error) {
		for _, q := range questions {
			seen = append(seen, q.QuestionText)
		}
		return &model.TestResult{TestID: test.ID, StudentName: "ann", Score: 2, TotalQuestions: 2, CompletedAt: time.Now().UTC()}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
	assert.NotZero(t, res.ID)

	var stored model.TestResult
	require.NoError(t, db.First(&stored, res.ID).Error)
	assert.Equal(t, "ann", stored.StudentName)
	assert.Equal(t, 2, stored.Score)
}

func TestAppendGradedUnknownTest(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTestResultRepository(db)

	called := false
	_, err := repo.AppendGraded(context.Background(), 99, func([]model.Question) (*model.TestResult, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, called)
}

func TestAppendGradedStoresNothingOnFailure(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTestResultRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, model.Test{Title: "T", TimeLimit: 5, PassingScore: 60, IsActive: true}, question("q", "A", 1))

	errGrade := errors.New("grading failed")
	res, err := repo.AppendGraded(ctx, test.ID, func([]model.Question) (*model.TestResult, error) {
		return nil, errGrade
	})
	assert.ErrorIs(t, err, errGrade)
	assert.Nil(t, res)

	errAfterInsert := errors.New("commit refused")
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:fail_after_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "test_results" {
			_ = tx.AddError(errAfterInsert)
		}
	}))
	res, err = repo.AppendGraded(ctx, test.ID, resultAt(test.ID, "ann", time.Now().UTC()))
	assert.ErrorIs(t, err, errAfterInsert)
	assert.Nil(t, res)

	var n int64
	require.NoError(t, db.Model(&model.TestResult{}).Count(&n).Error)
	assert.Zero(t, n, "the inserted row must be rolled back")
}

func TestFindAllByTestIDNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTestResultRepository(db)
	ctx := context.Background()
	test := seedTest(t, db, model.Test{Title: "T", TimeLimit: 5, PassingScore: 60, IsActive: true}, question("q", "A", 1))
	other := seedTest(t, db, model.Test{Title: "Other", TimeLimit: 5, PassingScore: 60, IsActive: true}, question("q", "A", 1))
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, g := range []repository.GradeFunc{
		resultAt(test.ID, "middle", base.Add(time.Minute)),
		resultAt(test.ID, "oldest", base),
		resultAt(test.ID, "newest-1", base.Add(time.Hour)),
		resultAt(test.ID, "newest-2", base.Add(time.Hour)),
	} {
		_, err := repo.AppendGraded(ctx, test.ID, g)
		require.NoError(t, err)
	}
	_, err := repo.AppendGraded(ctx, other.ID, resultAt(other.ID, "elsewhere", base.Add(2*time.Hour)))
	require.NoError(t, err)

	results, err := repo.FindAllByTestID(ctx, test.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.StudentName)
	}
	// Equal timestamps fall back to the later insert first.
	assert.Equal(t, []string{"newest-2", "newest-1", "middle", "oldest"}, names)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}
