package handler

import (
	"context"
	"net/http"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers the read-only catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/series", h.ListSeries)
	rg.GET("/singles", h.listItems("singles", models.CategorySingle))
	rg.GET("/novellas", h.listItems("novellas", models.CategoryNovella))
	rg.GET("/anthologies", h.listItems("anthologies", models.CategoryAnthology))
	rg.GET("/filters", h.ListFilters)
}

func (h *CatalogHandler) ListSeries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	series, err := h.catalogService.ListSeries(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

// listItems builds the handler for one flat category listing; the response
// key matches the route name so clients read {"singles": [...]} and so on.
func (h *CatalogHandler) listItems(key string, category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		items, err := h.catalogService.ListItems(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{key: items})
	}
}

func (h *CatalogHandler) ListFilters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	filters, err := h.catalogService.ListUniqueLabels(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, filters)
}
