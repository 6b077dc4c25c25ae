package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user; owned subjects, notes and tools cascade
	Delete(ctx context.Context, id int64) error

	// List retrieves all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)

	// ResetDailyCredits zeroes credits_used_today and stamps last_credit_reset
	ResetDailyCredits(ctx context.Context, id int64, at time.Time) error

	// ConsumeCredits increments credits_used_today by amount only while
	// daily_credits - credits_used_today >= amount. Returns whether the
	// increment was applied.
	ConsumeCredits(ctx context.Context, id int64, amount int) (bool, error)

	// ApplyPlan writes a full plan transition in one update, zeroing
	// credits_used_today and stamping last_credit_reset
	ApplyPlan(ctx context.Context, id int64, change PlanChange) error

	// UpdateStreak persists streak counters and the last activity timestamp
	UpdateStreak(ctx context.Context, id int64, current, longest int, lastActivity time.Time) error

	// ResetStaleCredits zeroes credits_used_today for every user whose
	// last_credit_reset is at or before cutoff. Returns affected rows.
	ResetStaleCredits(ctx context.Context, cutoff, at time.Time) (int64, error)
}
