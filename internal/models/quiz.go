package models

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url" gorm:"not null"`
	OwnerID     uint       `json:"-" gorm:"not null;index"`
	Questions   []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

type Question struct {
	ID              uint                        `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	QuizID          uint                        `json:"-" gorm:"not null;index"`
	QuestionTitle   string                      `json:"question_title" gorm:"not null"`
	QuestionOptions datatypes.JSONSlice[string] `json:"question_options"`
	Answer          string                      `json:"answer" gorm:"not null"`
}
