package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"size:200;not null"`
	Description  string         `json:"description,omitempty" gorm:"type:text"`
	TimeLimit    int            `json:"time_limit" gorm:"not null"`    // minutes
	PassingScore int            `json:"passing_score" gorm:"not null"` // percent, 0-100
	IsActive     bool           `json:"is_active" gorm:"not null;index"`
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
