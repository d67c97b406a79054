package models

import "time"

// ReadingStatus is the per-user state of one catalog item. The UI cycles
// unread -> reading -> completed -> unread; the server accepts any of the
// three values at any time and only derives timestamps from them.
type ReadingStatus string

const (
	StatusUnread    ReadingStatus = "unread"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// ReadingProgress is one row per (user, item, category).
//
// StartedAt is sticky: set the first time the status becomes "reading" and
// never overwritten afterwards. CompletedAt records the most recent
// completion; it is refreshed on every "completed" write and deliberately
// retained when the status later regresses.
type ReadingProgress struct {
	UserID      string        `json:"user_id" gorm:"type:uuid;not null;primaryKey;index:idx_user_item"`
	ItemID      string        `json:"book_id" gorm:"size:200;not null;primaryKey;index:idx_user_item"`
	Category    Category      `json:"category" gorm:"size:20;not null;primaryKey"`
	Status      ReadingStatus `json:"status" gorm:"type:text;not null;default:'unread'"`
	Rating      *int          `json:"rating,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"default:CURRENT_TIMESTAMP"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
