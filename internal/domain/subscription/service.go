package subscription

import "context"

// Service answers how many AI-operation credits a user has left right now and
// applies plan transitions.
type Service interface {
	// GetUserSubscription returns the entitlement snapshot, lazily resetting
	// the daily credit counter when 24h have elapsed since the last reset
	GetUserSubscription(ctx context.Context, userID int64) (*Entitlement, error)

	// CheckCredits reports whether the user has at least needed credits left.
	// Always a fresh read, never cached.
	CheckCredits(ctx context.Context, userID int64, needed int) (bool, error)

	// ConsumeCredits atomically spends amount credits, failing with
	// InsufficientCredits when fewer remain
	ConsumeCredits(ctx context.Context, userID int64, amount int) error

	// UpdateSubscriptionPlan applies a plan transition from the catalog.
	// paymentSuccessful=false records an inactive subscription with no dates.
	UpdateSubscriptionPlan(ctx context.Context, userID int64, planType, period string, paymentSuccessful bool) error

	// CancelSubscription downgrades the user to the FREE plan
	CancelSubscription(ctx context.Context, userID int64) error

	// CheckPlanLimit reports whether the user may create another subject or
	// note under the catalog limits for their plan
	CheckPlanLimit(ctx context.Context, userID int64, limitType string) (*LimitCheck, error)

	// OperationCost returns the fixed credit cost of a named AI operation
	OperationCost(operation string) int
}
