package plan

import "context"

// Service defines the interface for plan catalog business logic. Reads go
// through an in-memory cache invalidated on catalog writes.
type Service interface {
	// GetByType retrieves a plan by type, served from cache when possible
	GetByType(ctx context.Context, planType string) (*Plan, error)

	// List retrieves plans ordered by sort_order
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)

	// Create creates a catalog entry and invalidates the cache
	Create(ctx context.Context, p *Plan) error

	// Update updates a catalog entry and invalidates the cache
	Update(ctx context.Context, p *Plan) error

	// Delete removes a catalog entry and invalidates the cache
	Delete(ctx context.Context, planType string) error
}
