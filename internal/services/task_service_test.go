package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

func TestTaskService_CreateAndList(t *testing.T) {
	repo := newTestRepo(t)
	publisher := newMockPublisher()
	svc := NewTaskService(repo, publisher, testLogger(), validator.New())
	ctx := context.Background()

	due := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	task, err := svc.Create(ctx, 1, &validator.TaskCreateRequest{Title: "  Revise algebra ", DueDate: &due})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.Title != "Revise algebra" || task.Status != models.TaskPending || task.ReminderSent {
		t.Errorf("Create() = %+v", task)
	}
	if task.DueDate.Location() != time.UTC || !task.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v in UTC", task.DueDate, due)
	}

	if _, err := svc.Create(ctx, 2, &validator.TaskCreateRequest{Title: "other"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("List() returned %d tasks, want only the caller's", len(tasks))
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 || published[0].Type != events.TaskCreated {
		t.Errorf("published = %v", published)
	}
}

func TestTaskService_CreateRejectsBlankTitle(t *testing.T) {
	svc := NewTaskService(newTestRepo(t), nil, testLogger(), validator.New())

	_, err := svc.Create(context.Background(), 1, &validator.TaskCreateRequest{Title: "   "})
	if !isValidationError(err) {
		t.Errorf("Create() error = %v, want validation error", err)
	}
}

func TestTaskService_UpdatePartial(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewTaskService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	due := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	task, err := svc.Create(ctx, 1, &validator.TaskCreateRequest{Title: "Physics", DueDate: &due})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	status := models.TaskInProgress
	updated, err := svc.Update(ctx, 1, task.ID, &validator.TaskUpdateRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != models.TaskInProgress {
		t.Errorf("Status = %q, want %q", updated.Status, models.TaskInProgress)
	}
	if updated.Title != "Physics" || updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestTaskService_UpdateNotOwned(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewTaskService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, &validator.TaskCreateRequest{Title: "Chemistry"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "stolen"
	tests := []struct {
		name    string
		ownerID uint
		taskID  uint
	}{
		{name: "other user's task", ownerID: 2, taskID: task.ID},
		{name: "missing task", ownerID: 1, taskID: task.ID + 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.ownerID, tt.taskID, &validator.TaskUpdateRequest{Title: &title})
			if !errors.Is(err, ErrTaskNotFound) {
				t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
			}
		})
	}

	tasks, _ := svc.List(ctx, 1)
	if len(tasks) != 1 || tasks[0].Title != "Chemistry" {
		t.Errorf("task was modified: %+v", tasks)
	}
}

func TestTaskService_UpdateRejectsUnknownStatus(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewTaskService(repo, nil, testLogger(), validator.New())

	task, err := svc.Create(context.Background(), 1, &validator.TaskCreateRequest{Title: "Biology"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	status := models.TaskStatus("archived")
	_, err = svc.Update(context.Background(), 1, task.ID, &validator.TaskUpdateRequest{Status: &status})
	if !isValidationError(err) {
		t.Errorf("Update() error = %v, want validation error", err)
	}
}
