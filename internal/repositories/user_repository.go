package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/examprep-service/internal/models"
)

// UserRepository is the credential store
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	// List returns public profiles ordered by id
	List(ctx context.Context, tx *gorm.DB) ([]models.UserProfile, error)
}
