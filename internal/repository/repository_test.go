package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pycourse.db")), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Test{}, &model.Question{}, &model.TestResult{}, &model.Lecture{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedTest(t *testing.T, db *gorm.DB, test model.Test, questions ...model.Question) *model.Test {
	t.Helper()
	test.Questions = questions
	require.NoError(t, db.Create(&test).Error)
	return &test
}

func question(text, answer string, order int) model.Question {
	return model.Question{
		QuestionText:  text,
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: answer,
		OrderInTest:   order,
	}
}
