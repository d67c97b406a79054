package client

// http_client.go handles HTTP client functionality for the bookhubctl application.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient wraps the API server endpoints used by the CLI.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		token:      token,
	}
}

// Request/response structures

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

type ProgressEntry struct {
	BookID      string     `json:"book_id"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Rating      *int       `json:"rating,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProgressListResponse struct {
	Progress []ProgressEntry `json:"progress"`
}

type UpdateProgressRequest struct {
	BookID string  `json:"bookId"`
	Status string  `json:"status"`
	Rating *int    `json:"rating,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type FileSelection struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
}

type ImportRequest struct {
	Files []FileSelection `json:"files"`
}

type ImportCounts struct {
	Series      int      `json:"series"`
	Books       int      `json:"books"`
	Singles     int      `json:"singles"`
	Novellas    int      `json:"novellas"`
	Anthologies int      `json:"anthologies"`
	Errors      []string `json:"errors"`
}

type ImportResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Results *ImportCounts `json:"results,omitempty"`
}

type ImportListResponse struct {
	Files map[string][]string `json:"files"`
}

type BookRequestEntry struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	BookType       string  `json:"book_type"`
	Status         string  `json:"status"`
	RefusalComment *string `json:"refusal_comment,omitempty"`
}

type RequestListResponse struct {
	Requests []BookRequestEntry `json:"requests"`
}

type UpdateRequestStatus struct {
	Status         string  `json:"status"`
	RefusalComment *string `json:"refusalComment,omitempty"`
}

// API calls

func (c *HTTPClient) Login(username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(http.MethodPost, "/api/auth/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListProgress(category string) ([]ProgressEntry, error) {
	var resp ProgressListResponse
	if err := c.do(http.MethodGet, "/api/reading/"+category, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Progress, nil
}

func (c *HTTPClient) SetProgress(category string, req UpdateProgressRequest) error {
	return c.do(http.MethodPost, "/api/reading/"+category, req, nil)
}

func (c *HTTPClient) ListImportableFiles() (map[string][]string, error) {
	var resp ImportListResponse
	if err := c.do(http.MethodGet, "/api/import/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

func (c *HTTPClient) Import(files []FileSelection) (*ImportResponse, error) {
	var resp ImportResponse
	if err := c.do(http.MethodPost, "/api/import", ImportRequest{Files: files}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListRequests(status string) ([]BookRequestEntry, error) {
	path := "/api/requests"
	if status != "" {
		path += "?status=" + status
	}
	var resp RequestListResponse
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

func (c *HTTPClient) UpdateRequest(id, status string, refusalComment *string) error {
	return c.do(http.MethodPatch, "/api/requests/"+id, UpdateRequestStatus{Status: status, RefusalComment: refusalComment}, nil)
}

func (c *HTTPClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
