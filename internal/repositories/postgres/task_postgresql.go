package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (t *TaskPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}

// ===== BASIC CRUD OPERATIONS =====

func (t *TaskPostgreSQL) Create(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	db := t.getDB(tx)
	if err := db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (t *TaskPostgreSQL) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]*models.Task, error) {
	db := t.getDB(tx)
	var tasks []*models.Task
	if err := db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetByIDForOwner treats a task owned by someone else exactly like a missing one
func (t *TaskPostgreSQL) GetByIDForOwner(ctx context.Context, tx *gorm.DB, id, ownerID uint) (*models.Task, error) {
	db := t.getDB(tx)
	var task models.Task
	if err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

func (t *TaskPostgreSQL) Update(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	db := t.getDB(tx)
	result := db.WithContext(ctx).
		Model(task).
		Where("user_id = ?", task.UserID).
		Select("title", "status", "due_date", "updated_at").
		Updates(task)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", task.ID, repositories.ErrNotFound)
	}
	return nil
}

// ===== REMINDERS =====

func (t *TaskPostgreSQL) FindDue(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*models.Task, error) {
	db := t.getDB(tx)
	var tasks []*models.Task
	if err := db.WithContext(ctx).
		Where("reminder_sent = ?", false).
		Where("status <> ?", models.TaskCompleted).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find due tasks: %w", err)
	}
	return tasks, nil
}

func (t *TaskPostgreSQL) MarkReminderSent(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := t.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark reminder sent: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
