package repository

import (
	"context"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

type requestRepository struct {
	db *gorm.DB
}

type RequestRepository interface {
	List(ctx context.Context, status *models.BookRequestStatus) ([]models.BookRequest, error)
	FindByID(ctx context.Context, id string) (*models.BookRequest, error)
	Create(ctx context.Context, request *models.BookRequest) error
	Save(ctx context.Context, request *models.BookRequest) error
	Delete(ctx context.Context, id string) error
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// List returns requests newest first, optionally filtered by status.
func (r *requestRepository) List(ctx context.Context, status *models.BookRequestStatus) ([]models.BookRequest, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var list []models.BookRequest
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *requestRepository) FindByID(ctx context.Context, id string) (*models.BookRequest, error) {
	var request models.BookRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Create(ctx context.Context, request *models.BookRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// Save persists every field of the request, including columns being set back
// to NULL when a refusal comment is cleared.
func (r *requestRepository) Save(ctx context.Context, request *models.BookRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.BookRequest{}, "id = ?", id).Error
}
