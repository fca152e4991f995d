package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Answer option labels. A question always carries exactly four options.
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
	LabelD = "D"
)

var OptionLabels = []string{LabelA, LabelB, LabelC, LabelD}

func IsOptionLabel(s string) bool {
	for _, l := range OptionLabels {
		if s == l {
			return true
		}
	}
	return false
}

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"size:500"`
	OptionB       string         `json:"option_b" gorm:"size:500"`
	OptionC       string         `json:"option_c" gorm:"size:500"`
	OptionD       string         `json:"option_d" gorm:"size:500"`
	CorrectAnswer string         `json:"correct_answer" gorm:"size:1;not null"` // "A".."D"
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`
	OrderInTest   int            `json:"order" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerKey is the key under which a submission carries the answer to q.
func (q Question) AnswerKey() string {
	return strconv.FormatUint(uint64(q.ID), 10)
}
