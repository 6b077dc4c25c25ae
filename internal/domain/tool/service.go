package tool

import "context"

// Service defines the interface for learning tool business logic
type Service interface {
	// Generate consumes credits for the operation, produces the tool content
	// with the AI provider, persists it and records streak activity
	Generate(ctx context.Context, userID, noteID int64, toolType string) (*LearningTool, error)

	// GetByID retrieves a tool, enforcing ownership
	GetByID(ctx context.Context, userID, id int64) (*LearningTool, error)

	// ListByNote retrieves the tools of an owned note
	ListByNote(ctx context.Context, userID, noteID int64) ([]*LearningTool, error)

	// ListByUser retrieves the user's tools
	ListByUser(ctx context.Context, userID int64) ([]*LearningTool, error)

	// Delete removes a tool, enforcing ownership
	Delete(ctx context.Context, userID, id int64) error
}
