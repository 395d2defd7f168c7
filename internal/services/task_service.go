package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

type taskService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTaskService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) TaskService {
	return &taskService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *taskService) Create(ctx context.Context, ownerID uint, req *validator.TaskCreateRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:   strings.TrimSpace(req.Title),
		Status:  models.TaskPending,
		DueDate: toUTC(req.DueDate),
		UserID:  ownerID,
	}

	if err := s.repo.Task().Create(ctx, nil, task); err != nil {
		s.logger.Error("Failed to create task", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "user_id", ownerID)
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.TaskCreated, taskEvent(task)))
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID uint) ([]*models.Task, error) {
	tasks, err := s.repo.Task().ListByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return tasks, nil
}

// Update applies only the fields present in req. A task owned by another
// user is reported exactly like a missing one.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uint, req *validator.TaskUpdateRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		task, err := tx.Task().GetByIDForOwner(ctx, nil, taskID, ownerID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			task.Title = strings.TrimSpace(*req.Title)
		}
		if req.Status != nil {
			task.Status = *req.Status
		}
		if req.DueDate != nil {
			task.DueDate = toUTC(req.DueDate)
		}

		if err := tx.Task().Update(ctx, nil, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("Failed to update task", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Task updated", "task_id", taskID, "user_id", ownerID)
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.TaskUpdated, taskEvent(updated)))
	return updated, nil
}

func taskEvent(task *models.Task) events.TaskEvent {
	return events.TaskEvent{
		TaskID:  task.ID,
		UserID:  task.UserID,
		Title:   task.Title,
		Status:  string(task.Status),
		DueDate: task.DueDate,
	}
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
