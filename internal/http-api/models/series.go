package models

import "time"

// Series owns its books through Item.SeriesID. Book order inside a series
// comes from Item.OrderInSeries and need not be contiguous.
type Series struct {
	ID          string    `json:"id" gorm:"primaryKey;size:200"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// association
	Books []Item `json:"books,omitempty" gorm:"foreignKey:SeriesID;references:ID"`
}

func (Series) TableName() string {
	return "series"
}
