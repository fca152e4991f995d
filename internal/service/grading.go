package service

import (
	"math"
	"strconv"

	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/model"
)

// Grade is the outcome of scoring one submission against an answer key.
type Grade struct {
	Correct    int
	Total      int
	Percentage float64
	Details    []dto.QuestionResultDTO
}

// GradeAnswers scores answers against the questions' answer key. Answers are
// keyed by the decimal question id. Comparison is exact and case-sensitive;
// missing answers count as incorrect and keys matching no question are ignored.
// Details follow the order of questions.
func GradeAnswers(questions []model.Question, answers map[string]string) Grade {
	g := Grade{
		Total:   len(questions),
		Details: make([]dto.QuestionResultDTO, 0, len(questions)),
	}
	for _, q := range questions {
		detail := dto.QuestionResultDTO{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if submitted, ok := answers[q.AnswerKey()]; ok {
			answer := submitted
			detail.UserAnswer = &answer
			detail.IsCorrect = submitted == q.CorrectAnswer
		}
		if detail.IsCorrect {
			g.Correct++
		}
		g.Details = append(g.Details, detail)
	}
	g.Percentage = RoundPercentage(g.Correct, g.Total)
	return g
}

// RoundPercentage returns 100*correct/total rounded to two decimals, half away
// from zero. total must be positive.
func RoundPercentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	raw := float64(correct) * 100 / float64(total)
	return math.Round(raw*100) / 100
}

// IsPassed reports whether the rounded percentage meets the passing threshold.
// Equality passes.
func IsPassed(percentage float64, passingScore int) bool {
	return percentage >= float64(passingScore)
}

func resultMessage(passed bool, percentage float64) string {
	verdict := "not passed"
	if passed {
		verdict = "passed"
	}
	return "Test " + verdict + "! Result: " + strconv.FormatFloat(percentage, 'f', -1, 64) + "%"
}
