package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
)

var errStorage = errors.New("storage unavailable")

// store is an in-memory stand-in for the gorm repositories.
type store struct {
	mu        sync.Mutex
	tests     map[uint]*model.Test
	questions map[uint]*model.Question
	results   []model.TestResult
	lectures  map[uint]*model.Lecture
	nextID    uint

	failAppend bool
}

func newStore() *store {
	return &store{
		tests:     map[uint]*model.Test{},
		questions: map[uint]*model.Question{},
		lectures:  map[uint]*model.Lecture{},
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *store) addTest(t model.Test, qs ...model.Question) *model.Test {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	for i := range qs {
		qs[i].ID = s.id()
		qs[i].TestID = t.ID
		q := qs[i]
		s.questions[q.ID] = &q
	}
	s.tests[t.ID] = &t
	return &t
}

func (s *store) questionsOf(testID uint) []model.Question {
	out := []model.Question{}
	for _, q := range s.questions {
		if q.TestID == testID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderInTest != out[j].OrderInTest {
			return out[i].OrderInTest < out[j].OrderInTest
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *store) graded(testID uint) bool {
	for _, res := range s.results {
		if res.TestID == testID {
			return true
		}
	}
	return false
}

type fakeTestRepo struct{ s *store }

func (r fakeTestRepo) Create(_ context.Context, t *model.Test) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.id()
	for i := range t.Questions {
		t.Questions[i].ID = r.s.id()
		t.Questions[i].TestID = t.ID
		q := t.Questions[i]
		r.s.questions[q.ID] = &q
	}
	stored := *t
	stored.Questions = nil
	r.s.tests[t.ID] = &stored
	return nil
}

func (r fakeTestRepo) FindByID(_ context.Context, id uint) (*model.Test, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTestRepo) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Test, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.Questions = r.s.questionsOf(id)
	return t, nil
}

func (r fakeTestRepo) FindAllActiveWithQuestionCount(context.Context) ([]repository.TestWithCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []repository.TestWithCount{}
	for _, t := range r.s.tests {
		if t.IsActive {
			out = append(out, repository.TestWithCount{Test: *t, QuestionCount: len(r.s.questionsOf(t.ID))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r fakeTestRepo) Update(_ context.Context, t *model.Test) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tests[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	cp.Questions = nil
	r.s.tests[t.ID] = &cp
	return nil
}

func (r fakeTestRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tests, id)
	for qid, q := range r.s.questions {
		if q.TestID == id {
			delete(r.s.questions, qid)
		}
	}
	return nil
}

func (r fakeTestRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.tests)), nil
}

type fakeQuestionRepo struct{ s *store }

func (r fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q.ID = r.s.id()
	cp := *q
	r.s.questions[q.ID] = &cp
	return nil
}

func (r fakeQuestionRepo) FindByID(_ context.Context, id uint) (*model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r fakeQuestionRepo) FindByTestID(_ context.Context, testID uint) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.questionsOf(testID), nil
}

func (r fakeQuestionRepo) UpdateUngraded(_ context.Context, q *model.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.graded(q.TestID) {
		return repository.ErrGraded
	}
	cp := *q
	r.s.questions[q.ID] = &cp
	return nil
}

func (r fakeQuestionRepo) DeleteUngraded(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.s.graded(q.TestID) {
		return repository.ErrGraded
	}
	delete(r.s.questions, id)
	return nil
}

func (r fakeQuestionRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.questions)), nil
}

type fakeResultRepo struct{ s *store }

func (r fakeResultRepo) AppendGraded(_ context.Context, testID uint, grade repository.GradeFunc) (*model.TestResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tests[testID]; !ok {
		return nil, repository.ErrNotFound
	}
	res, err := grade(r.s.questionsOf(testID))
	if err != nil {
		return nil, err
	}
	if r.s.failAppend {
		return nil, errStorage
	}
	res.ID = r.s.id()
	r.s.results = append(r.s.results, *res)
	return res, nil
}

func (r fakeResultRepo) FindAllByTestID(_ context.Context, testID uint) ([]model.TestResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.TestResult{}
	for _, res := range r.s.results {
		if res.TestID == testID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r fakeResultRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.results)), nil
}

type fakeLectureRepo struct{ s *store }

func (r fakeLectureRepo) Create(_ context.Context, l *model.Lecture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = r.s.id()
	cp := *l
	r.s.lectures[l.ID] = &cp
	return nil
}

func (r fakeLectureRepo) FindByID(_ context.Context, id uint) (*model.Lecture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lectures[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r fakeLectureRepo) FindAll(context.Context) ([]model.Lecture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Lecture{}
	for _, l := range r.s.lectures {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderInList != out[j].OrderInList {
			return out[i].OrderInList < out[j].OrderInList
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeLectureRepo) Update(_ context.Context, l *model.Lecture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.lectures[l.ID] = &cp
	return nil
}

func (r fakeLectureRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lectures[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.lectures, id)
	return nil
}

func (r fakeLectureRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.lectures)), nil
}
