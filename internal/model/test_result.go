package model

import "time"

// TestResult is append-only: one row per submission, never updated or deleted.
type TestResult struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	TestID         uint      `json:"test_id" gorm:"not null;index"`
	StudentName    string    `json:"student_name" gorm:"size:100;not null"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	Percentage     float64   `json:"percentage" gorm:"not null"`
	TimeTaken      int       `json:"time_taken"` // seconds, client reported
	Answers        string    `json:"answers" gorm:"type:text"`
	CompletedAt    time.Time `json:"completed_at" gorm:"not null;index"`
}
