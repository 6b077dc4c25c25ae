package subject

import "context"

// Service defines the interface for subject business logic
type Service interface {
	// Create creates a subject, enforcing the owner's plan limit
	Create(ctx context.Context, s *Subject) error

	// GetByID retrieves a subject, enforcing ownership
	GetByID(ctx context.Context, userID, id int64) (*Subject, error)

	// ListByUser retrieves the user's subjects
	ListByUser(ctx context.Context, userID int64) ([]*Subject, error)

	// Update updates a subject, enforcing ownership
	Update(ctx context.Context, userID int64, s *Subject) error

	// Delete removes a subject, enforcing ownership
	Delete(ctx context.Context, userID, id int64) error
}
