package client

import (
	"context"
	"fmt"
)

// ToolService manages generated learning tools
type ToolService struct {
	client *Client
}

// Tools returns the learning tool service
func (c *Client) Tools() *ToolService {
	return &ToolService{client: c}
}

// GenerateRequest requests tool generation from a note
type GenerateRequest struct {
	NoteID   int64  `json:"noteId"`
	ToolType string `json:"toolType"` // quiz, flashcards, concept-map, summary
}

// Generate produces a learning tool from a note, spending daily credits
func (s *ToolService) Generate(ctx context.Context, req GenerateRequest) (*LearningTool, error) {
	var tool LearningTool
	if err := s.client.doRequest(ctx, "POST", "/api/v1/tools/generate", req, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// List retrieves all the user's tools
func (s *ToolService) List(ctx context.Context) ([]LearningTool, error) {
	var tools []LearningTool
	if err := s.client.doRequest(ctx, "GET", "/api/v1/tools", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// ListByNote retrieves the tools generated from one note
func (s *ToolService) ListByNote(ctx context.Context, noteID int64) ([]LearningTool, error) {
	var tools []LearningTool
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/notes/%d/tools", noteID), nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// Get retrieves one tool
func (s *ToolService) Get(ctx context.Context, id int64) (*LearningTool, error) {
	var tool LearningTool
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/tools/%d", id), nil, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// Delete removes a tool
func (s *ToolService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/tools/%d", id), nil, nil)
}
