package models

import (
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	ID      uint       `json:"id" gorm:"primaryKey"`
	Title   string     `json:"title" gorm:"size:120;not null"`
	Status  TaskStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	DueDate *time.Time `json:"due_date" gorm:"index"`

	// Flips to true once, after the reminder email is delivered
	ReminderSent bool `json:"reminder_sent" gorm:"not null;default:false;index"`

	UserID uint `json:"user_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
