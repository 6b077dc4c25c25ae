package promo

import "context"

// Service defines the interface for promo code business logic
type Service interface {
	// Validate checks a code against a plan selection and returns the first
	// failing reason, never a combination of violations
	Validate(ctx context.Context, code, planType string) (*Validation, error)

	// Redeem atomically consumes one use of the code. A non-empty sessionID
	// makes the call redeliverable: the same session redeems at most once.
	Redeem(ctx context.Context, code, sessionID string) error

	// Create creates a promo code (admin)
	Create(ctx context.Context, p *PromoCode) error

	// List retrieves promo codes (admin)
	List(ctx context.Context) ([]*PromoCode, error)

	// Update updates a promo code (admin)
	Update(ctx context.Context, p *PromoCode) error

	// Delete removes a promo code (admin)
	Delete(ctx context.Context, code string) error
}
