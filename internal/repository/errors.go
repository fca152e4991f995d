package repository

import (
	"errors"

	"github.com/lshigami/pycourse/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// ErrGraded is returned when a question would change after its test was graded.
var ErrGraded = errors.New("test already has results")

// Row lock strengths for lockTest.
const (
	lockShare     = "SHARE"
	lockExclusive = "UPDATE"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// lockTest locks the row of a live test until tx ends. Graders take it shared,
// question edits take it exclusive, so an answer key never changes while a
// submission is being graded against it.
func lockTest(tx *gorm.DB, testID uint, strength string) error {
	var test model.Test
	err := tx.Clauses(clause.Locking{Strength: strength}).Select("id").First(&test, testID).Error
	return translate(err)
}

// lockUngradedTest locks the test exclusively and fails with ErrGraded if it
// already has results.
func lockUngradedTest(tx *gorm.DB, testID uint) error {
	if err := lockTest(tx, testID, lockExclusive); err != nil {
		return err
	}
	var n int64
	if err := tx.Model(&model.TestResult{}).Where("test_id = ?", testID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrGraded
	}
	return nil
}
