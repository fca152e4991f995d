package user

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/lshigami/pycourse/internal/dto"
	"github.com/lshigami/pycourse/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserTestService struct {
	tests  []dto.TestSummaryDTO
	detail *dto.TestDetailDTO
	err    error
}

func (f *fakeUserTestService) GetAllTests(context.Context) ([]dto.TestSummaryDTO, error) {
	return f.tests, f.err
}

func (f *fakeUserTestService) GetTestDetails(_ context.Context, id uint) (*dto.TestDetailDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.detail == nil || f.detail.ID != id {
		return nil, fmt.Errorf("%w: test %d", service.ErrNotFound, id)
	}
	return f.detail, nil
}

type fakeSubmissionService struct {
	lastReq dto.SubmitTestRequest
	result  *dto.SubmissionResultDTO
	err     error
}

func (f *fakeSubmissionService) SubmitTest(_ context.Context, _ uint, req dto.SubmitTestRequest) (*dto.SubmissionResultDTO, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakeSubmissionService) GetTestResults(_ context.Context, id uint) (*dto.TestResultsDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TestResultsDTO{Test: dto.TestSummaryDTO{ID: id}, Results: []dto.TestResultDTO{}}, nil
}

type fakeCompilerService struct {
	resp  *dto.ExecuteResponse
	err   error
	check *dto.CompilerCheckResponse
}

func (f *fakeCompilerService) Execute(context.Context, dto.ExecuteRequest) (*dto.ExecuteResponse, error) {
	return f.resp, f.err
}

func (f *fakeCompilerService) Check(context.Context) *dto.CompilerCheckResponse {
	return f.check
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newUserRouter(uts service.UserTestService, tss service.TestSubmissionService, cs service.CompilerService) *gin.Engine {
	r := gin.New()
	tc := NewUserTestController(uts, tss)
	cc := NewCompilerController(cs)
	r.GET("/api/tests", tc.GetAllTests)
	r.GET("/api/tests/:test_id", tc.GetTestDetails)
	r.POST("/api/tests/:test_id/submit", tc.SubmitTest)
	r.GET("/api/tests/:test_id/results", tc.GetTestResults)
	r.POST("/api/compiler/execute", cc.Execute)
	r.GET("/api/compiler/check", cc.Check)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAllTestsEnvelope(t *testing.T) {
	r := newUserRouter(&fakeUserTestService{tests: []dto.TestSummaryDTO{{ID: 1, Title: "Basics", QuestionsCount: 5}}}, &fakeSubmissionService{}, &fakeCompilerService{})

	w := do(r, http.MethodGet, "/api/tests", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                 `json:"success"`
		Data    []dto.TestSummaryDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, 5, body.Data[0].QuestionsCount)
}

func TestGetTestDetailsStatuses(t *testing.T) {
	r := newUserRouter(&fakeUserTestService{detail: &dto.TestDetailDTO{ID: 3, Title: "T"}}, &fakeSubmissionService{}, &fakeCompilerService{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/tests/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tests/abc", "").Code)

	w := do(r, http.MethodGet, "/api/tests/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	body := do(r, http.MethodGet, "/api/tests/3", "").Body.String()
	assert.NotContains(t, body, "correct_answer")
}

func TestSubmitTestHandler(t *testing.T) {
	sub := &fakeSubmissionService{result: &dto.SubmissionResultDTO{
		ResultID: 7, TestID: 3, Score: 4, TotalQuestions: 5, Percentage: 80, Passed: true, PassingScore: 80,
		CompletedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Message: "Test passed! Result: 80%",
	}}
	r := newUserRouter(&fakeUserTestService{}, sub, &fakeCompilerService{})

	w := do(r, http.MethodPost, "/api/tests/3/submit", `{"student_name":"Ada","answers":{"11":"A","12":"B"},"time_taken":60}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.SubmissionResultDTO `json:"data"`
		Message string                  `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 80.0, body.Data.Percentage)
	assert.True(t, body.Data.Passed)
	assert.Equal(t, "Test passed! Result: 80%", body.Message)
	assert.Equal(t, map[string]string{"11": "A", "12": "B"}, sub.lastReq.Answers)
	require.NotNil(t, sub.lastReq.TimeTaken)
	assert.Equal(t, 60, *sub.lastReq.TimeTaken)
}

func TestSubmitTestHandlerErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing answers", `{"student_name":"Ada"}`, nil, http.StatusBadRequest},
		{"malformed json", `{"answers":`, nil, http.StatusBadRequest},
		{"negative time", `{"answers":{},"time_taken":-5}`, nil, http.StatusBadRequest},
		{"not found", `{"answers":{}}`, fmt.Errorf("%w: test 3", service.ErrNotFound), http.StatusNotFound},
		{"empty test", `{"answers":{}}`, fmt.Errorf("%w: test 3", service.ErrEmptyTest), http.StatusBadRequest},
		{"storage failure", `{"answers":{}}`, fmt.Errorf("%w: db", service.ErrInternal), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newUserRouter(&fakeUserTestService{}, &fakeSubmissionService{err: tc.err}, &fakeCompilerService{})
			w := do(r, http.MethodPost, "/api/tests/3/submit", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestGetTestResultsHandler(t *testing.T) {
	r := newUserRouter(&fakeUserTestService{}, &fakeSubmissionService{}, &fakeCompilerService{})
	w := do(r, http.MethodGet, "/api/tests/9/results", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[]`)
}

func TestExecuteHandler(t *testing.T) {
	out := "ok\n"
	r := newUserRouter(&fakeUserTestService{}, &fakeSubmissionService{}, &fakeCompilerService{
		resp: &dto.ExecuteResponse{Success: true, Output: &out, Status: "success"},
	})

	w := do(r, http.MethodPost, "/api/compiler/execute", `{"code":"print('ok')"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"output":"ok\n","status":"success","duration_ms":0}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/compiler/execute", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteHandlerProgramFailureIs200(t *testing.T) {
	r := newUserRouter(&fakeUserTestService{}, &fakeSubmissionService{}, &fakeCompilerService{
		resp: &dto.ExecuteResponse{Success: false, Error: "Execution timed out (10s)", Status: "timeout"},
	})

	w := do(r, http.MethodPost, "/api/compiler/execute", `{"code":"while True: pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "timed out")
}

func TestCheckHandler(t *testing.T) {
	r := newUserRouter(&fakeUserTestService{}, &fakeSubmissionService{}, &fakeCompilerService{
		check: &dto.CompilerCheckResponse{Success: true, Version: "Python 3.12.1", Message: "Python interpreter is available"},
	})

	w := do(r, http.MethodGet, "/api/compiler/check", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Python 3.12.1")
}
