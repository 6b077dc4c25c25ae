package note

import "context"

// Service defines the interface for note business logic
type Service interface {
	// Create creates a note, enforcing the owner's plan limit
	Create(ctx context.Context, n *Note) error

	// GetByID retrieves a note, enforcing ownership
	GetByID(ctx context.Context, userID, id int64) (*Note, error)

	// ListBySubject retrieves the notes of an owned subject
	ListBySubject(ctx context.Context, userID, subjectID int64) ([]*Note, error)

	// Update updates a note, enforcing ownership
	Update(ctx context.Context, userID int64, n *Note) error

	// Delete removes a note, enforcing ownership
	Delete(ctx context.Context, userID, id int64) error

	// AttachFile records an uploaded file URL on an owned note
	AttachFile(ctx context.Context, userID, id int64, fileURL, fileType string) error
}
