package repository

import (
	"context"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type progressRepository struct {
	db *gorm.DB
}

type ProgressRepository interface {
	GetAllProgress(ctx context.Context, userID string, category models.Category) ([]models.ReadingProgress, error)
	GetProgress(ctx context.Context, userID, itemID string, category models.Category) (*models.ReadingProgress, error)
	UpsertProgress(ctx context.Context, progress *models.ReadingProgress) error
	DeleteProgress(ctx context.Context, userID, itemID string, category models.Category) error
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) GetAllProgress(ctx context.Context, userID string, category models.Category) ([]models.ReadingProgress, error) {
	var list []models.ReadingProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *progressRepository) GetProgress(ctx context.Context, userID, itemID string, category models.Category) (*models.ReadingProgress, error) {
	var progress models.ReadingProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ? AND category = ?", userID, itemID, category).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpsertProgress writes one row keyed by (user_id, item_id, category). The
// timestamp derivation happens in the service; this is a plain keyed write.
func (r *progressRepository) UpsertProgress(ctx context.Context, progress *models.ReadingProgress) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "rating", "notes", "started_at", "completed_at", "updated_at",
		}),
	}).Create(progress).Error
}

func (r *progressRepository) DeleteProgress(ctx context.Context, userID, itemID string, category models.Category) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ? AND category = ?", userID, itemID, category).
		Delete(&models.ReadingProgress{}).Error
}
