package dto

import "time"

// QuestionPublicDTO is what a student sees before submitting: the answer key is withheld.
type QuestionPublicDTO struct {
	ID           uint   `json:"id"`
	TestID       uint   `json:"test_id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	OrderInTest  int    `json:"order"`
}

// QuestionDTO is the full question including the answer key, for admin views.
type QuestionDTO struct {
	ID            uint   `json:"id"`
	TestID        uint   `json:"test_id"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	OrderInTest   int    `json:"order"`
}

// TestSummaryDTO is used for listing tests and as the header of result listings.
type TestSummaryDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	TimeLimit      int       `json:"time_limit"`
	PassingScore   int       `json:"passing_score"`
	IsActive       bool      `json:"is_active"`
	QuestionsCount int       `json:"questions_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// TestDetailDTO is the student-facing test with its ordered questions.
type TestDetailDTO struct {
	ID             uint                `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	TimeLimit      int                 `json:"time_limit"`
	PassingScore   int                 `json:"passing_score"`
	IsActive       bool                `json:"is_active"`
	QuestionsCount int                 `json:"questions_count"`
	Questions      []QuestionPublicDTO `json:"questions"`
	CreatedAt      time.Time           `json:"created_at"`
}

// TestAdminDetailDTO mirrors TestDetailDTO but exposes the answer key.
type TestAdminDetailDTO struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	TimeLimit      int           `json:"time_limit"`
	PassingScore   int           `json:"passing_score"`
	IsActive       bool          `json:"is_active"`
	QuestionsCount int           `json:"questions_count"`
	Questions      []QuestionDTO `json:"questions"`
	CreatedAt      time.Time     `json:"created_at"`
}

// --- Submissions ---

// SubmitTestRequest is the body of POST /tests/{id}/submit. Answers are keyed by
// question id rendered as a string; missing keys count as unanswered.
type SubmitTestRequest struct {
	StudentName *string           `json:"student_name" binding:"omitempty,max=100"`
	Answers     map[string]string `json:"answers" binding:"required"`
	TimeTaken   *int              `json:"time_taken" binding:"omitempty,min=0"`
}

// QuestionResultDTO is the per-question breakdown of a graded submission.
type QuestionResultDTO struct {
	QuestionID    uint    `json:"question_id"`
	QuestionText  string  `json:"question_text"`
	UserAnswer    *string `json:"user_answer"` // null when unanswered
	CorrectAnswer string  `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	Explanation   string  `json:"explanation"`
}

// SubmissionResultDTO is returned by a successful submission.
type SubmissionResultDTO struct {
	ResultID        uint                `json:"result_id"`
	TestID          uint                `json:"test_id"`
	StudentName     string              `json:"student_name"`
	Score           int                 `json:"score"`
	TotalQuestions  int                 `json:"total_questions"`
	Percentage      float64             `json:"percentage"`
	TimeTaken       int                 `json:"time_taken"`
	Passed          bool                `json:"passed"`
	PassingScore    int                 `json:"passing_score"`
	DetailedResults []QuestionResultDTO `json:"detailed_results"`
	CompletedAt     time.Time           `json:"completed_at"`
	Message         string              `json:"-"`
}

// TestResultDTO is one historical result row.
type TestResultDTO struct {
	ID             uint              `json:"id"`
	TestID         uint              `json:"test_id"`
	StudentName    string            `json:"student_name"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	Percentage     float64           `json:"percentage"`
	TimeTaken      int               `json:"time_taken"`
	Answers        map[string]string `json:"answers"`
	CompletedAt    time.Time         `json:"completed_at"`
}

// TestResultsDTO is the body of GET /tests/{id}/results.
type TestResultsDTO struct {
	Test    TestSummaryDTO  `json:"test"`
	Results []TestResultDTO `json:"results"`
}
