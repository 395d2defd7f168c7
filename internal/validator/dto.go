package validator

import (
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/models"
)

// LoginRequest represents the credentials posted to /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=512"`
}

// TaskCreateRequest represents the request structure for creating tasks
type TaskCreateRequest struct {
	Title   string     `json:"title" validate:"required,task_title"`
	DueDate *time.Time `json:"due_date"`
}

// TaskUpdateRequest carries only the fields to change; nil means untouched
type TaskUpdateRequest struct {
	Title   *string            `json:"title" validate:"omitempty,task_title"`
	Status  *models.TaskStatus `json:"status" validate:"omitempty,task_status"`
	DueDate *time.Time         `json:"due_date"`
}

// ResultCreateRequest represents a completed exam attempt to persist
type ResultCreateRequest struct {
	UserID             string         `json:"user_id" validate:"required,max=255"`
	Topic              string         `json:"topic" validate:"max=255"`
	TotalQuestions     int            `json:"total_questions" validate:"min=0"`
	Attempted          int            `json:"attempted" validate:"min=0"`
	Correct            int            `json:"correct" validate:"min=0"`
	Wrong              int            `json:"wrong" validate:"min=0"`
	Score              float64        `json:"score"`
	Accuracy           float64        `json:"accuracy"`
	TimeSpent          int            `json:"time_spent" validate:"min=0"`
	SectionalBreakdown map[string]int `json:"sectional_breakdown"`
}

// ExamRequest drives topic-based and web-based generation
type ExamRequest struct {
	Topic          string   `json:"topic" validate:"required,max=2048"`
	Difficulty     string   `json:"difficulty" validate:"required,max=50"`
	TotalQuestions int      `json:"total_questions" validate:"min=1,max=100"`
	QTypes         []string `json:"q_types" validate:"min=1,dive,question_type"`
}

// DocumentExamForm is the multipart form for /exam/generate-from-pdf
type DocumentExamForm struct {
	Difficulty     string `form:"difficulty" json:"difficulty" validate:"required,max=50"`
	TotalQuestions int    `form:"total_questions" json:"total_questions" validate:"min=1,max=100"`
	QTypes         string `form:"q_types" json:"q_types" validate:"required,max=500"`
}

// ExtractionForm is the multipart form for /exam/api/extract-pyq
type ExtractionForm struct {
	StartIndex     int `form:"start_index" json:"start_index" validate:"min=1"`
	QuestionsLimit int `form:"questions_limit" json:"questions_limit" validate:"min=1,max=200"`
}
