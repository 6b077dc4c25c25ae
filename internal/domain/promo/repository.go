package promo

import "context"

// Repository defines the interface for promo code data access
type Repository interface {
	// GetByCode retrieves a promo code by its upper-cased code
	GetByCode(ctx context.Context, code string) (*PromoCode, error)

	// Create creates a promo code; duplicate codes surface a Conflict
	Create(ctx context.Context, p *PromoCode) error

	// List retrieves all promo codes
	List(ctx context.Context) ([]*PromoCode, error)

	// Update updates a promo code
	Update(ctx context.Context, p *PromoCode) error

	// Delete removes a promo code
	Delete(ctx context.Context, code string) error

	// Redeem increments current_uses only while the code is active, unexpired
	// and under its usage limit. Returns whether the increment was applied.
	// A non-empty sessionID dedupes: a (code, session) pair that already
	// redeemed counts as applied without incrementing again.
	Redeem(ctx context.Context, code, sessionID string) (bool, error)
}
