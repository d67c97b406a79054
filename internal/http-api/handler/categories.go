package handler

import "bookhub/internal/http-api/models"

// URL segment -> category mapping shared by the reading and catalog routes.
// "books" is the series-book scope; the other three match their folders.
var categorySlugs = map[string]models.Category{
	"books":       models.CategorySeriesBook,
	"singles":     models.CategorySingle,
	"novellas":    models.CategoryNovella,
	"anthologies": models.CategoryAnthology,
}

func categoryFromSlug(slug string) (models.Category, bool) {
	category, ok := categorySlugs[slug]
	return category, ok
}
