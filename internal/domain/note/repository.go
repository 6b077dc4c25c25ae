package note

import "context"

// Repository defines the interface for note data access
type Repository interface {
	// CreateWithinLimit inserts the note only while the owner has fewer than
	// limit notes across all subjects (limit -1 = unlimited). Single-statement
	// check-and-insert; returns whether the insert was applied.
	CreateWithinLimit(ctx context.Context, n *Note, limit int) (bool, error)

	// GetByID retrieves a note by ID
	GetByID(ctx context.Context, id int64) (*Note, error)

	// ListBySubject retrieves all notes within a subject
	ListBySubject(ctx context.Context, subjectID int64) ([]*Note, error)

	// Update updates a note
	Update(ctx context.Context, n *Note) error

	// Delete removes a note; its learning tools cascade
	Delete(ctx context.Context, id int64) error

	// CountByUser returns the number of notes across all the user's subjects
	CountByUser(ctx context.Context, userID int64) (int, error)
}
