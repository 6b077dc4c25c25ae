package tool

import "context"

// Repository defines the interface for learning tool data access
type Repository interface {
	// Create stores a generated tool
	Create(ctx context.Context, t *LearningTool) error

	// GetByID retrieves a tool by ID
	GetByID(ctx context.Context, id int64) (*LearningTool, error)

	// ListByNote retrieves all tools generated from a note
	ListByNote(ctx context.Context, noteID int64) ([]*LearningTool, error)

	// ListByUser retrieves all tools owned by a user
	ListByUser(ctx context.Context, userID int64) ([]*LearningTool, error)

	// Delete removes a tool
	Delete(ctx context.Context, id int64) error
}
