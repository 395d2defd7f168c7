// Package events publishes domain events about tasks and exam results.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "examprep-service"
	EventVersion = "1.0"
)

// Event types double as topic names
const (
	TaskCreated      = "task.created"
	TaskUpdated      = "task.updated"
	ResultSaved      = "result.saved"
	TaskReminderSent = "task.reminder_sent"
)

var Topics = []string{TaskCreated, TaskUpdated, ResultSaved, TaskReminderSent}

type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events to their topic
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type TaskEvent struct {
	TaskID  uint       `json:"task_id"`
	UserID  uint       `json:"user_id"`
	Title   string     `json:"title"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type ResultSavedEvent struct {
	ResultID uint    `json:"result_id"`
	UserID   string  `json:"user_id"`
	Topic    string  `json:"topic"`
	Score    float64 `json:"score"`
	Accuracy float64 `json:"accuracy"`
}

type ReminderSentEvent struct {
	TaskID uint      `json:"task_id"`
	UserID uint      `json:"user_id"`
	Email  string    `json:"email"`
	DueAt  time.Time `json:"due_at"`
}
