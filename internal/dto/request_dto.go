package dto

import "time"

type LectureCreateDTO struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
	OrderInList int    `json:"order"`
}

// LectureUpdateDTO is a partial update: only non-nil fields are applied.
type LectureUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Content     *string `json:"content" binding:"omitempty,min=1"`
	OrderInList *int    `json:"order"`
}

type LectureDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	OrderInList int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Compiler ---

type ExecuteRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExecuteResponse is {success, output} on success and {success:false, error} otherwise.
type ExecuteResponse struct {
	Success    bool    `json:"success"`
	Output     *string `json:"output,omitempty"`
	Error      string  `json:"error,omitempty"`
	Status     string  `json:"status"`
	DurationMs int64   `json:"duration_ms"`
	Truncated  bool    `json:"truncated,omitempty"`
}

type CompilerCheckResponse struct {
	Success bool   `json:"success"`
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
