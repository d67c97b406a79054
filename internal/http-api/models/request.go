package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRequestStatus is the review state of a user-submitted catalog request.
type BookRequestStatus string

const (
	RequestPending  BookRequestStatus = "pending"
	RequestWaitlist BookRequestStatus = "waitlist"
	RequestApproved BookRequestStatus = "approved"
	RequestRefused  BookRequestStatus = "refused"
)

// Valid reports whether s is one of the four known request statuses.
func (s BookRequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestWaitlist, RequestApproved, RequestRefused:
		return true
	}
	return false
}

// BookRequest is a user's ask for a new catalog entry. The refusal-comment
// fields may only be non-null while Status is "refused"; CreatedBy/CreatedAt
// mark the first author of the comment, UpdatedBy/UpdatedAt later edits.
type BookRequest struct {
	ID             string            `json:"id" gorm:"primaryKey;type:uuid"`
	Title          string            `json:"title" gorm:"not null"`
	Author         string            `json:"author" gorm:"not null"`
	BookType       string            `json:"book_type" gorm:"default:'other'"`
	AdditionalInfo *string           `json:"additional_info,omitempty"`
	RequestedBy    string            `json:"requested_by" gorm:"type:uuid;not null;index"`
	Status         BookRequestStatus `json:"status" gorm:"type:text;not null;default:'pending'"`

	RefusalComment          *string    `json:"refusal_comment,omitempty"`
	RefusalCommentCreatedBy *string    `json:"refusal_comment_created_by,omitempty" gorm:"type:uuid"`
	RefusalCommentCreatedAt *time.Time `json:"refusal_comment_created_at,omitempty"`
	RefusalCommentUpdatedBy *string    `json:"refusal_comment_updated_by,omitempty" gorm:"type:uuid"`
	RefusalCommentUpdatedAt *time.Time `json:"refusal_comment_updated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a BookRequest
func (r *BookRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (BookRequest) TableName() string {
	return "book_requests"
}
