package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// NoteService manages study notes
type NoteService struct {
	client *Client
}

// Notes returns the note service
func (c *Client) Notes() *NoteService {
	return &NoteService{client: c}
}

// CreateNoteRequest creates a note
type CreateNoteRequest struct {
	SubjectID int64  `json:"subjectId"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
}

// UpdateNoteRequest updates a note
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// Get retrieves one note
func (s *NoteService) Get(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/notes/%d", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create creates a note
func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*Note, error) {
	var note Note
	if err := s.client.doRequest(ctx, "POST", "/api/v1/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update updates a note
func (s *NoteService) Update(ctx context.Context, id int64, req UpdateNoteRequest) (*Note, error) {
	var note Note
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/notes/%d", id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note and its generated tools
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/notes/%d", id), nil, nil)
}

// Upload attaches a PDF or image to a note
func (s *NoteService) Upload(ctx context.Context, id int64, filename, contentType string, data []byte) (*Note, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/api/v1/notes/%d/upload", s.client.baseURL, id), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.client.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.client.token)
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if env.Error != nil {
			env.Error.StatusCode = resp.StatusCode
			return nil, env.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var note Note
	if err := json.Unmarshal(env.Data, &note); err != nil {
		return nil, fmt.Errorf("failed to parse response data: %w", err)
	}
	return &note, nil
}
