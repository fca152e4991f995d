package model

import (
	"time"

	"gorm.io/gorm"
)

type Lecture struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	OrderInList int            `json:"order" gorm:"not null;default:0;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
