package models

import (
	"time"

	"gorm.io/datatypes"
)

// SectionalBreakdown maps a section name to the number of questions in it
type SectionalBreakdown map[string]int

// ExamResult is append-only: rows are created once and never updated
type ExamResult struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	UserID         string  `json:"user_id" gorm:"not null;index;size:255"`
	Topic          string  `json:"topic" gorm:"size:255"`
	TotalQuestions int     `json:"total_questions"`
	Attempted      int     `json:"attempted"`
	Correct        int     `json:"correct"`
	Wrong          int     `json:"wrong"`
	Score          float64 `json:"score"`
	Accuracy       float64 `json:"accuracy"`
	TimeSpent      int     `json:"time_spent"` // seconds

	SectionalBreakdown datatypes.JSONType[SectionalBreakdown] `json:"sectional_breakdown"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
