package dto

// QuestionCreateDTO is used on its own and within TestCreateDTO.
type QuestionCreateDTO struct {
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"max=500"`
	OptionB       string `json:"option_b" binding:"max=500"`
	OptionC       string `json:"option_c" binding:"max=500"`
	OptionD       string `json:"option_d" binding:"max=500"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Explanation   string `json:"explanation"`
	OrderInTest   int    `json:"order" binding:"min=0"`
}

// QuestionUpdateDTO is a partial update: nil fields are left untouched.
type QuestionUpdateDTO struct {
	QuestionText  *string `json:"question_text" binding:"omitempty,min=1"`
	OptionA       *string `json:"option_a" binding:"omitempty,max=500"`
	OptionB       *string `json:"option_b" binding:"omitempty,max=500"`
	OptionC       *string `json:"option_c" binding:"omitempty,max=500"`
	OptionD       *string `json:"option_d" binding:"omitempty,max=500"`
	CorrectAnswer *string `json:"correct_answer" binding:"omitempty,oneof=A B C D"`
	Explanation   *string `json:"explanation"`
	OrderInTest   *int    `json:"order" binding:"omitempty,min=0"`
}

// TestCreateDTO creates a test, optionally together with its questions.
type TestCreateDTO struct {
	Title        string              `json:"title" binding:"required,max=200"`
	Description  string              `json:"description"`
	TimeLimit    *int                `json:"time_limit" binding:"omitempty,min=1"`
	PassingScore *int                `json:"passing_score" binding:"omitempty,min=0,max=100"`
	IsActive     *bool               `json:"is_active"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// TestUpdateDTO is a partial update of test metadata; questions are managed separately.
type TestUpdateDTO struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	TimeLimit    *int    `json:"time_limit" binding:"omitempty,min=1"`
	PassingScore *int    `json:"passing_score" binding:"omitempty,min=0,max=100"`
	IsActive     *bool   `json:"is_active"`
}

type StatsDTO struct {
	LecturesCount  int64 `json:"lectures_count"`
	TestsCount     int64 `json:"tests_count"`
	QuestionsCount int64 `json:"questions_count"`
	ResultsCount   int64 `json:"results_count"`
}
