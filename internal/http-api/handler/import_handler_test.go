package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockImportService mocks the ImportService interface
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportBatch(ctx context.Context, selections []service.FileSelection) (*service.ImportResult, error) {
	args := m.Called(ctx, selections)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) ListImportableFiles() (map[string][]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func setupImportRouter(mockService *MockImportService, email string) *gin.Engine {
	router := setupRouter()
	isAdmin := middleware.AdminChecker([]string{"admin@example.com"})
	handler := NewImportHandler(mockService, isAdmin)

	group := router.Group("/api/import")
	if email != "" {
		group.Use(authAs("user-123", email))
	}
	handler.RegisterRoutes(group, middleware.RequireAdmin(isAdmin))
	return router
}

func TestCheckAdmin(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  bool
	}{
		{"admin email", "admin@example.com", true},
		{"admin email different casing", "Admin@Example.COM", true},
		{"regular user", "user@example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupImportRouter(new(MockImportService), tc.email)

			req, _ := http.NewRequest("GET", "/api/import/check-admin", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]bool
			json.Unmarshal(w.Body.Bytes(), &response)
			assert.Equal(t, tc.want, response["isAdmin"])
		})
	}
}

func TestCheckAdmin_Unauthenticated(t *testing.T) {
	router := setupImportRouter(new(MockImportService), "")

	req, _ := http.NewRequest("GET", "/api/import/check-admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFiles_NonAdminForbidden(t *testing.T) {
	mockService := new(MockImportService)
	router := setupImportRouter(mockService, "user@example.com")

	req, _ := http.NewRequest("GET", "/api/import/list", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "ListImportableFiles")
}

func TestListFiles_Admin(t *testing.T) {
	mockService := new(MockImportService)
	mockService.On("ListImportableFiles").Return(map[string][]string{
		"series":  {"eisenhorn.json"},
		"singles": {"titanicus.json"},
	}, nil)
	router := setupImportRouter(mockService, "admin@example.com")

	req, _ := http.NewRequest("GET", "/api/import/list", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Files map[string][]string `json:"files"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, []string{"eisenhorn.json"}, response.Files["series"])

	mockService.AssertExpectations(t)
}

func TestImport_Success(t *testing.T) {
	mockService := new(MockImportService)
	mockService.On("ImportBatch", mock.Anything,
		[]service.FileSelection{{Folder: "series", File: "eisenhorn.json"}}).
		Return(&service.ImportResult{
			Success: true,
			Message: "Import completed: 1 series, 3 books",
			Results: &service.ImportCounts{Series: 1, Books: 3, Errors: []string{}},
		}, nil)
	router := setupImportRouter(mockService, "admin@example.com")

	body, _ := json.Marshal(map[string]any{
		"files": []map[string]string{{"folder": "series", "file": "eisenhorn.json"}},
	})
	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response service.ImportResult
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Success)
	assert.Equal(t, "Import completed: 1 series, 3 books", response.Message)

	mockService.AssertExpectations(t)
}

func TestImport_EmptyBody(t *testing.T) {
	mockService := new(MockImportService)
	mockService.On("ImportBatch", mock.Anything, []service.FileSelection{}).
		Return(&service.ImportResult{
			Success: false,
			Error:   "No files selected for import",
		}, nil)
	router := setupImportRouter(mockService, "admin@example.com")

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// an empty selection is the service's answer, not a transport failure
	assert.Equal(t, http.StatusOK, w.Code)

	var response service.ImportResult
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response.Success)
	assert.Equal(t, "No files selected for import", response.Error)
}

func TestImport_ServiceFailure(t *testing.T) {
	mockService := new(MockImportService)
	mockService.On("ImportBatch", mock.Anything, mock.Anything).
		Return(nil, errors.New("vocabulary lock held by another import"))
	router := setupImportRouter(mockService, "admin@example.com")

	body, _ := json.Marshal(map[string]any{
		"files": []map[string]string{{"folder": "series", "file": "x.json"}},
	})
	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Failed to import data", response["error"])
}
