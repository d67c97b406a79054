package handler

import (
	"context"
	"net/http"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService service.ImportService
	isAdmin       func(string) bool
}

func NewImportHandler(importService service.ImportService, isAdmin func(string) bool) *ImportHandler {
	return &ImportHandler{importService: importService, isAdmin: isAdmin}
}

// RegisterRoutes registers the import routes. check-admin only needs a valid
// identity; listing and running imports sit behind the admin gate.
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/check-admin", h.CheckAdmin)
	admin := rg.Group("", requireAdmin)
	admin.GET("/list", h.ListFiles)
	admin.POST("", h.Import)
}

func (h *ImportHandler) CheckAdmin(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	emailStr, _ := email.(string)
	c.JSON(http.StatusOK, gin.H{"isAdmin": h.isAdmin(emailStr)})
}

func (h *ImportHandler) ListFiles(c *gin.Context) {
	files, err := h.importService.ListImportableFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *ImportHandler) Import(c *gin.Context) {
	// An empty or missing body means an empty selection; the service answers
	// that case itself, so binding errors are not fatal here.
	var req dto.ImportRequest
	_ = c.ShouldBindJSON(&req)

	selections := make([]service.FileSelection, 0, len(req.Files))
	for _, file := range req.Files {
		selections = append(selections, service.FileSelection{Folder: file.Folder, File: file.File})
	}

	// Imports touch every selected file and the vocabulary documents; give
	// the batch more room than the regular request timeout.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	result, err := h.importService.ImportBatch(ctx, selections)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to import data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
