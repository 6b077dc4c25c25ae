package plan

import "context"

// Repository defines the interface for plan catalog data access
type Repository interface {
	// GetByType retrieves a plan by its unique plan type
	GetByType(ctx context.Context, planType string) (*Plan, error)

	// List retrieves all plans ordered by sort_order
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)

	// Create creates a new catalog entry
	Create(ctx context.Context, p *Plan) error

	// Update updates a catalog entry
	Update(ctx context.Context, p *Plan) error

	// Delete removes a catalog entry
	Delete(ctx context.Context, planType string) error
}
