package client

import (
	"context"
	"fmt"
)

// SubjectService manages study subjects
type SubjectService struct {
	client *Client
}

// Subjects returns the subject service
func (c *Client) Subjects() *SubjectService {
	return &SubjectService{client: c}
}

// CreateSubjectRequest creates a subject
type CreateSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// List retrieves all the user's subjects
func (s *SubjectService) List(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := s.client.doRequest(ctx, "GET", "/api/v1/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Get retrieves one subject
func (s *SubjectService) Get(ctx context.Context, id int64) (*Subject, error) {
	var subject Subject
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/subjects/%d", id), nil, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create creates a subject
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*Subject, error) {
	var subject Subject
	if err := s.client.doRequest(ctx, "POST", "/api/v1/subjects", req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Update updates a subject
func (s *SubjectService) Update(ctx context.Context, id int64, req CreateSubjectRequest) (*Subject, error) {
	var subject Subject
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/subjects/%d", id), req, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Delete removes a subject and its notes
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/subjects/%d", id), nil, nil)
}

// Notes retrieves the notes of a subject
func (s *SubjectService) Notes(ctx context.Context, subjectID int64) ([]Note, error) {
	var notes []Note
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/subjects/%d/notes", subjectID), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
