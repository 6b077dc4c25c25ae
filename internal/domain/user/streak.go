package user

import "context"

// StreakService maintains day-granularity study streaks
type StreakService interface {
	// RecordActivity bumps the streak for activity happening now. Same-day
	// repeats are no-ops; a one-day gap increments; anything longer restarts
	// at 1.
	RecordActivity(ctx context.Context, userID int64) (*Streak, error)

	// GetStreakData returns the current streak, zeroing the stored counter
	// first when more than a full day has passed since the last activity
	GetStreakData(ctx context.Context, userID int64) (*Streak, error)
}
