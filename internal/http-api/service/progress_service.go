package service

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrItemIDRequired  = errors.New("bookId is required")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidStatus   = errors.New("invalid reading status")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// ProgressPatch is the caller-supplied part of an upsert. Status defaults to
// unread when empty; rating and notes pass through as given.
type ProgressPatch struct {
	Status models.ReadingStatus
	Rating *int
	Notes  *string
}

type ProgressService interface {
	GetAll(ctx context.Context, userID string, category models.Category) ([]models.ReadingProgress, error)
	Upsert(ctx context.Context, userID, itemID string, category models.Category, patch ProgressPatch) (*models.ReadingProgress, error)
	Delete(ctx context.Context, userID, itemID string, category models.Category) error
}

type progressService struct {
	repo repository.ProgressRepository
	now  func() time.Time
}

func NewProgressService(repo repository.ProgressRepository) ProgressService {
	return &progressService{repo: repo, now: time.Now}
}

func (s *progressService) GetAll(ctx context.Context, userID string, category models.Category) ([]models.ReadingProgress, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.GetAllProgress(ctx, userID, category)
}

// Upsert writes one progress row for (userID, itemID, category), deriving
// the lifecycle timestamps from the status:
//
//   - started_at is set on the first transition to "reading" and then sticky;
//     later writes never clear or move it.
//   - completed_at is refreshed on every "completed" write and otherwise
//     preserved, including when the status regresses away from completed
//     (it records the most recent completion).
//   - updated_at always moves to now.
func (s *progressService) Upsert(ctx context.Context, userID, itemID string, category models.Category, patch ProgressPatch) (*models.ReadingProgress, error) {
	if itemID == "" {
		return nil, ErrItemIDRequired
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	status := patch.Status
	if status == "" {
		status = models.StatusUnread
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, ErrInvalidRating
	}

	existing, err := s.repo.GetProgress(ctx, userID, itemID, category)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.now()
	row := &models.ReadingProgress{
		UserID:    userID,
		ItemID:    itemID,
		Category:  category,
		Status:    status,
		Rating:    patch.Rating,
		Notes:     patch.Notes,
		UpdatedAt: now,
	}

	if existing != nil {
		row.StartedAt = existing.StartedAt
		row.CompletedAt = existing.CompletedAt
	}
	if status == models.StatusReading && row.StartedAt == nil {
		row.StartedAt = &now
	}
	if status == models.StatusCompleted {
		row.CompletedAt = &now
	}

	if err := s.repo.UpsertProgress(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *progressService) Delete(ctx context.Context, userID, itemID string, category models.Category) error {
	if itemID == "" {
		return ErrItemIDRequired
	}
	if !category.Valid() {
		return ErrInvalidCategory
	}
	return s.repo.DeleteProgress(ctx, userID, itemID, category)
}
