package subject

import "context"

// Repository defines the interface for subject data access
type Repository interface {
	// CreateWithinLimit inserts the subject only while the owner has fewer
	// than limit subjects (limit -1 = unlimited). The check and the insert
	// are a single statement, so concurrent creates cannot race past the
	// limit. Returns whether the insert was applied.
	CreateWithinLimit(ctx context.Context, s *Subject, limit int) (bool, error)

	// GetByID retrieves a subject by ID
	GetByID(ctx context.Context, id int64) (*Subject, error)

	// ListByUser retrieves all subjects owned by a user
	ListByUser(ctx context.Context, userID int64) ([]*Subject, error)

	// Update updates a subject
	Update(ctx context.Context, s *Subject) error

	// Delete removes a subject; its notes cascade
	Delete(ctx context.Context, id int64) error

	// CountByUser returns the number of subjects owned by a user
	CountByUser(ctx context.Context, userID int64) (int, error)
}
