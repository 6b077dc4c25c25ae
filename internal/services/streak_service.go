package services

import (
	"context"
	"time"

	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// StreakService implements user.StreakService
type StreakService struct {
	users  user.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewStreakService creates a new streak service
func NewStreakService(users user.Repository, log *logger.Logger) *StreakService {
	return &StreakService{
		users:  users,
		logger: log,
		now:    time.Now,
	}
}

// dayDiff returns the number of calendar days between a and b. The local
// calendar dates are re-anchored at UTC midnight before subtracting so that
// 23- and 25-hour DST days still count as exactly one day.
func dayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	at := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bt := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bt.Sub(at) / (24 * time.Hour))
}

// RecordActivity bumps the streak for activity happening now. Repeated
// activity on the same day does not write at all.
func (s *StreakService) RecordActivity(ctx context.Context, userID int64) (*user.Streak, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := 1
	if u.LastActivityDate != nil {
		switch diff := dayDiff(*u.LastActivityDate, now); {
		case diff == 0:
			return &user.Streak{
				CurrentStreak:    u.CurrentStreak,
				LongestStreak:    u.LongestStreak,
				LastActivityDate: u.LastActivityDate,
			}, nil
		case diff == 1:
			current = u.CurrentStreak + 1
		}
	}

	longest := u.LongestStreak
	if current > longest {
		longest = current
	}

	if err := s.users.UpdateStreak(ctx, userID, current, longest, now); err != nil {
		return nil, err
	}

	return &user.Streak{
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastActivityDate: &now,
	}, nil
}

// GetStreakData returns the current streak. A streak broken by more than a
// one-day gap is zeroed in storage before being returned, so the stored
// counter never overstates a lapsed streak.
func (s *StreakService) GetStreakData(ctx context.Context, userID int64) (*user.Streak, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.LastActivityDate != nil && u.CurrentStreak > 0 {
		if dayDiff(*u.LastActivityDate, s.now()) > 1 {
			if err := s.users.UpdateStreak(ctx, userID, 0, u.LongestStreak, *u.LastActivityDate); err != nil {
				s.logger.ErrorWithErr(err, "Failed to zero lapsed streak")
			}
			u.CurrentStreak = 0
		}
	}

	return &user.Streak{
		CurrentStreak:    u.CurrentStreak,
		LongestStreak:    u.LongestStreak,
		LastActivityDate: u.LastActivityDate,
	}, nil
}
