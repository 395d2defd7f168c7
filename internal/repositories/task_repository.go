package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/examprep-service/internal/models"
)

// TaskRepository is the task store. Every read and write made on behalf of a
// user is keyed by the owner id as well as the task id.
type TaskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, task *models.Task) error
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]*models.Task, error)
	GetByIDForOwner(ctx context.Context, tx *gorm.DB, id, ownerID uint) (*models.Task, error)

	// Update writes title, status and due_date only; reminder_sent is never touched here
	Update(ctx context.Context, tx *gorm.DB, task *models.Task) error

	// FindDue returns unsent, non-completed tasks due within [from, to]
	FindDue(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*models.Task, error)

	// MarkReminderSent flips reminder_sent to true if it is still false.
	// It reports whether this call performed the flip.
	MarkReminderSent(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}
