package repository

import (
	"context"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

type ItemRepository interface {
	UpsertSeries(ctx context.Context, series *models.Series) error
	UpsertItem(ctx context.Context, item *models.Item) error
	ListSeriesWithBooks(ctx context.Context) ([]models.Series, error)
	ListByCategory(ctx context.Context, category models.Category) ([]models.Item, error)
	ListLabels(ctx context.Context) ([]models.Item, error)
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// UpsertSeries inserts or replaces one series row keyed by id.
func (r *itemRepository) UpsertSeries(ctx context.Context, series *models.Series) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "updated_at"}),
	}).Create(series).Error
}

// UpsertItem inserts or replaces one catalog row keyed by (id, category).
func (r *itemRepository) UpsertItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "author", "series_id", "order_in_series", "faction", "tags", "updated_at",
		}),
	}).Create(item).Error
}

// ListSeriesWithBooks returns every series with its books ordered by their
// position in the series.
func (r *itemRepository) ListSeriesWithBooks(ctx context.Context) ([]models.Series, error) {
	var list []models.Series
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_in_series")
		}).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *itemRepository) ListByCategory(ctx context.Context, category models.Category) ([]models.Item, error) {
	var list []models.Item
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("title").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListLabels loads only the faction and tag columns of every item, for the
// derived unique-label listing.
func (r *itemRepository) ListLabels(ctx context.Context) ([]models.Item, error) {
	var list []models.Item
	if err := r.db.WithContext(ctx).
		Select("id", "category", "faction", "tags").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
