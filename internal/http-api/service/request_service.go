package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrTitleAuthorRequired    = errors.New("title and author are required")
	ErrInvalidRequestStatus   = errors.New("invalid request status")
	ErrRefusalCommentRequired = errors.New("refusal comment is required when refusing a request")
	ErrRequestNotFound        = errors.New("book request not found")
)

// CreateRequestInput is the user-supplied part of a new book request.
type CreateRequestInput struct {
	Title          string
	Author         string
	BookType       string
	AdditionalInfo *string
}

type RequestService interface {
	List(ctx context.Context, status *models.BookRequestStatus) ([]models.BookRequest, error)
	Create(ctx context.Context, userID string, input CreateRequestInput) (*models.BookRequest, error)
	UpdateStatus(ctx context.Context, id, actorID string, status models.BookRequestStatus, refusalComment *string) (*models.BookRequest, error)
	Delete(ctx context.Context, id string) error
}

type requestService struct {
	repo repository.RequestRepository
	now  func() time.Time
}

func NewRequestService(repo repository.RequestRepository) RequestService {
	return &requestService{repo: repo, now: time.Now}
}

func (s *requestService) List(ctx context.Context, status *models.BookRequestStatus) ([]models.BookRequest, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidRequestStatus
	}
	return s.repo.List(ctx, status)
}

func (s *requestService) Create(ctx context.Context, userID string, input CreateRequestInput) (*models.BookRequest, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Author) == "" {
		return nil, ErrTitleAuthorRequired
	}

	bookType := input.BookType
	if bookType == "" {
		bookType = "other"
	}

	request := &models.BookRequest{
		Title:          input.Title,
		Author:         input.Author,
		BookType:       bookType,
		AdditionalInfo: input.AdditionalInfo,
		RequestedBy:    userID,
		Status:         models.RequestPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateStatus moves a request through its review states and keeps the
// refusal-comment sub-record consistent with them:
//
//   - entering "refused" requires a non-empty comment; the first comment on a
//     request sets created_by/created_at, a later refused-to-refused write
//     sets updated_by/updated_at and keeps the original authorship
//   - leaving "refused" clears the comment and all four authorship fields
func (s *requestService) UpdateStatus(ctx context.Context, id, actorID string, status models.BookRequestStatus, refusalComment *string) (*models.BookRequest, error) {
	if !status.Valid() {
		return nil, ErrInvalidRequestStatus
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if status == models.RequestRefused {
		if refusalComment == nil || strings.TrimSpace(*refusalComment) == "" {
			return nil, ErrRefusalCommentRequired
		}
		now := s.now()
		hadComment := request.RefusalComment != nil
		request.RefusalComment = refusalComment
		if hadComment {
			request.RefusalCommentUpdatedBy = &actorID
			request.RefusalCommentUpdatedAt = &now
		} else {
			request.RefusalCommentCreatedBy = &actorID
			request.RefusalCommentCreatedAt = &now
			request.RefusalCommentUpdatedBy = nil
			request.RefusalCommentUpdatedAt = nil
		}
	} else {
		request.RefusalComment = nil
		request.RefusalCommentCreatedBy = nil
		request.RefusalCommentCreatedAt = nil
		request.RefusalCommentUpdatedBy = nil
		request.RefusalCommentUpdatedAt = nil
	}

	request.Status = status
	request.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
