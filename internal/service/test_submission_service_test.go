package service

import (
	"context"
	"sync"
	"testing"

	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionFixture(t *testing.T) (*store, TestSubmissionService, *model.Test) {
	t.Helper()
	s := newStore()
	test := s.addTest(
		model.Test{Title: "Basics", TimeLimit: 30, PassingScore: 80, IsActive: true},
		model.Question{QuestionText: "q1", CorrectAnswer: "A", OrderInTest: 1},
		model.Question{QuestionText: "q2", CorrectAnswer: "B", OrderInTest: 2},
		model.Question{QuestionText: "q3", CorrectAnswer: "B", OrderInTest: 3},
		model.Question{QuestionText: "q4", CorrectAnswer: "A", OrderInTest: 4},
		model.Question{QuestionText: "q5", CorrectAnswer: "A", OrderInTest: 5, Explanation: "because"},
	)
	svc := NewTestSubmissionService(fakeTestRepo{s}, fakeQuestionRepo{s}, fakeResultRepo{s})
	return s, svc, test
}

func answersFor(s *store, testID uint, labels ...string) map[string]string {
	qs := s.questionsOf(testID)
	out := map[string]string{}
	for i, l := range labels {
		out[qs[i].AnswerKey()] = l
	}
	return out
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestSubmitTestScoresAndPersists(t *testing.T) {
	s, svc, test := newSubmissionFixture(t)

	res, err := svc.SubmitTest(context.Background(), test.ID, dto.SubmitTestRequest{
		StudentName: strPtr("  Ada  "),
		Answers:     answersFor(s, test.ID, "A", "B", "B", "A", "C"),
		TimeTaken:   intPtr(42),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Score)
	assert.Equal(t, 5, res.TotalQuestions)
	assert.Equal(t, 80.0, res.Percentage)
	assert.True(t, res.Passed, "percentage equal to passing score passes")
	assert.Equal(t, 80, res.PassingScore)
	assert.Equal(t, "Ada", res.StudentName)
	assert.Equal(t, 42, res.TimeTaken)
	assert.Equal(t, "Test passed! Result: 80%", res.Message)
	assert.NotZero(t, res.ResultID)
	assert.False(t, res.CompletedAt.IsZero())
	require.Len(t, res.DetailedResults, 5)
	assert.Equal(t, "because", res.DetailedResults[4].Explanation)

	require.Len(t, s.results, 1)
	stored := s.results[0]
	assert.Equal(t, res.ResultID, stored.ID)
	assert.Equal(t, 4, stored.Score)
	assert.Contains(t, stored.Answers, `"C"`)
}

func TestSubmitTestDefaults(t *testing.T) {
	s, svc, test := newSubmissionFixture(t)

	res, err := svc.SubmitTest(context.Background(), test.ID, dto.SubmitTestRequest{
		Answers: map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultStudentName, res.StudentName)
	assert.Equal(t, 0, res.TimeTaken)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Passed)
	assert.Len(t, s.results, 1)
}

func TestSubmitTestValidation(t *testing.T) {
	_, svc, test := newSubmissionFixture(t)

	_, err := svc.SubmitTest(context.Background(), test.ID, dto.SubmitTestRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitTest(context.Background(), test.ID, dto.SubmitTestRequest{
		Answers:   map[string]string{},
		TimeTaken: intPtr(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitTestNotFound(t *testing.T) {
	s, svc, _ := newSubmissionFixture(t)

	res, err := svc.SubmitTest(context.Background(), 9999, dto.SubmitTestRequest{Answers: map[string]string{}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, res)
	assert.Empty(t, s.results)
}

func TestSubmitTestEmptyTest(t *testing.T) {
	s := newStore()
	empty := s.addTest(model.Test{Title: "Empty", TimeLimit: 10, PassingScore: 50, IsActive: true})
	svc := NewTestSubmissionService(fakeTestRepo{s}, fakeQuestionRepo{s}, fakeResultRepo{s})

	res, err := svc.SubmitTest(context.Background(), empty.ID, dto.SubmitTestRequest{Answers: map[string]string{}})
	assert.ErrorIs(t, err, ErrEmptyTest)
	assert.Nil(t, res)
	assert.Empty(t, s.results)
}

func TestSubmitTestAppendFailure(t *testing.T) {
	s, svc, test := newSubmissionFixture(t)
	s.failAppend = true

	res, err := svc.SubmitTest(context.Background(), test.ID, dto.SubmitTestRequest{
		Answers: answersFor(s, test.ID, "A"),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, res)
	assert.Empty(t, s.results)
}

func TestSubmitTestTwiceCreatesTwoResults(t *testing.T) {
	s, svc, test := newSubmissionFixture(t)
	req := dto.SubmitTestRequest{Answers: answersFor(s, test.ID, "A", "B", "B", "A", "A")}

	first, err := svc.SubmitTest(context.Background(), test.ID, req)
	require.NoError(t, err)
	second, err := svc.SubmitTest(context.Background(), test.ID, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ResultID, second.ResultID)

	listing, err := svc.GetTestResults(context.Background(), test.ID)
	require.NoError(t, err)
	require.Len(t, listing.Results, 2)
	ids := []uint{listing.Results[0].ID, listing.Results[1].ID}
	assert.ElementsMatch(t, []uint{first.ResultID, second.ResultID}, ids)
	assert.Equal(t, second.ResultID, listing.Results[0].ID, "newest first")
	assert.Equal(t, 100.0, listing.Results[0].Percentage)
	assert.Equal(t, req.Answers, listing.Results[0].Answers)
	assert.Equal(t, "Basics", listing.Test.Title)
	assert.Equal(t, 5, listing.Test.QuestionsCount)
}

func TestSubmitTestConcurrent(t *testing.T) {
	s, svc, test := newSubmissionFixture(t)
	req := dto.SubmitTestRequest{Answers: answersFor(s, test.ID, "A", "B")}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitTest(context.Background(), test.ID, req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	listing, err := svc.GetTestResults(context.Background(), test.ID)
	require.NoError(t, err)
	assert.Len(t, listing.Results, n)
}

func TestGetTestResultsNotFound(t *testing.T) {
	_, svc, _ := newSubmissionFixture(t)

	_, err := svc.GetTestResults(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
