package models

import (
	"time"

	"gorm.io/datatypes"
)

// Category tells the four catalog shapes apart. They share one table; the
// primary key is (id, category) because source identifiers are only unique
// within their own category.
type Category string

const (
	CategorySeriesBook Category = "series_book"
	CategorySingle     Category = "single"
	CategoryNovella    Category = "novella"
	CategoryAnthology  Category = "anthology"
)

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySeriesBook, CategorySingle, CategoryNovella, CategoryAnthology:
		return true
	}
	return false
}

// Item is a single catalog entry: a book inside a series, a standalone novel,
// a novella or an anthology. SeriesID and OrderInSeries are only set for
// series books.
type Item struct {
	ID            string                      `json:"id" gorm:"primaryKey;size:200"`
	Category      Category                    `json:"category" gorm:"primaryKey;size:20"`
	Title         string                      `json:"title" gorm:"not null"`
	Author        string                      `json:"author"`
	SeriesID      *string                     `json:"series_id,omitempty" gorm:"size:200;index"`
	OrderInSeries *int                        `json:"order_in_series,omitempty"`
	Faction       datatypes.JSONSlice[string] `json:"faction" gorm:"type:jsonb"`
	Tags          datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}
