package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create creates a new user with FREE plan defaults from the catalog
	Create(ctx context.Context, email, username, passwordHash string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// Delete removes the account and all owned content
	Delete(ctx context.Context, id int64) error

	// List retrieves users with pagination (admin)
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
}
