package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
)

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) repositories.ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *resultRepository) Create(ctx context.Context, tx *gorm.DB, result *models.ExamResult) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create exam result: %w", err)
	}
	return nil
}

func (r *resultRepository) ListByUserNewestFirst(ctx context.Context, tx *gorm.DB, userID string) ([]*models.ExamResult, error) {
	return r.listByUser(ctx, tx, userID, "created_at DESC, id DESC")
}

func (r *resultRepository) ListByUserInsertionOrder(ctx context.Context, tx *gorm.DB, userID string) ([]*models.ExamResult, error) {
	return r.listByUser(ctx, tx, userID, "id ASC")
}

func (r *resultRepository) listByUser(ctx context.Context, tx *gorm.DB, userID, order string) ([]*models.ExamResult, error) {
	db := r.getDB(tx)
	var results []*models.ExamResult
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list exam results: %w", err)
	}
	return results, nil
}
