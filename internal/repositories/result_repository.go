package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/examprep-service/internal/models"
)

// ResultRepository is the append-only exam result store
type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.ExamResult) error

	// ListByUserNewestFirst orders by created_at desc, id desc
	ListByUserNewestFirst(ctx context.Context, tx *gorm.DB, userID string) ([]*models.ExamResult, error)

	// ListByUserInsertionOrder orders by id asc
	ListByUserInsertionOrder(ctx context.Context, tx *gorm.DB, userID string) ([]*models.ExamResult, error)
}
