package services

import (
	"context"
	"testing"
	"time"

	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

func newTestStreakService(t *testing.T) (*StreakService, *testutil.MockUserRepository) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewStreakService(users, log), users
}

func TestStreakService_RecordActivity(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)
	earlierToday := time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastActivity *time.Time
		current      int
		longest      int
		wantCurrent  int
		wantLongest  int
		wantWrite    bool
	}{
		{"first ever activity", nil, 0, 0, 1, 1, true},
		{"same day is a no-op", &earlierToday, 3, 5, 3, 5, false},
		{"next day increments", &yesterday, 3, 5, 4, 5, true},
		{"next day extends longest", &yesterday, 5, 5, 6, 6, true},
		{"gap resets to one", &threeDaysAgo, 7, 9, 1, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestStreakService(t)
			svc.now = func() time.Time { return now }

			u := seedUser(t, users, &user.User{
				Email:            "a@example.com",
				PlanType:         user.PlanTypeFree,
				CurrentStreak:    tt.current,
				LongestStreak:    tt.longest,
				LastActivityDate: tt.lastActivity,
			})

			got, err := svc.RecordActivity(context.Background(), u.ID)
			if err != nil {
				t.Fatalf("RecordActivity() error = %v", err)
			}
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}

			stored := users.Users[u.ID]
			if tt.wantWrite {
				if stored.LastActivityDate == nil || !stored.LastActivityDate.Equal(now) {
					t.Errorf("LastActivityDate = %v, want %v", stored.LastActivityDate, now)
				}
			} else if stored.LastActivityDate == nil || !stored.LastActivityDate.Equal(*tt.lastActivity) {
				t.Errorf("same-day activity wrote LastActivityDate = %v", stored.LastActivityDate)
			}
		})
	}
}

func TestStreakService_RecordActivity_MidnightBoundary(t *testing.T) {
	// 23:50 yesterday followed by 00:10 today is a one-day gap, not zero
	svc, users := newTestStreakService(t)
	last := time.Date(2025, 6, 14, 23, 50, 0, 0, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 10, 0, 0, time.UTC) }

	u := seedUser(t, users, &user.User{
		Email:            "a@example.com",
		PlanType:         user.PlanTypeFree,
		CurrentStreak:    2,
		LongestStreak:    2,
		LastActivityDate: &last,
	})

	got, err := svc.RecordActivity(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
}

func TestStreakService_RecordActivity_DSTTransition(t *testing.T) {
	// 23- and 25-hour DST days are still exactly one calendar day apart
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		last time.Time
		now  time.Time
	}{
		{
			"spring forward",
			time.Date(2025, 3, 9, 12, 0, 0, 0, loc),
			time.Date(2025, 3, 10, 12, 0, 0, 0, loc),
		},
		{
			"fall back",
			time.Date(2025, 11, 2, 12, 0, 0, 0, loc),
			time.Date(2025, 11, 3, 12, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestStreakService(t)
			last := tt.last
			svc.now = func() time.Time { return tt.now }

			u := seedUser(t, users, &user.User{
				Email:            "a@example.com",
				PlanType:         user.PlanTypeFree,
				CurrentStreak:    2,
				LongestStreak:    2,
				LastActivityDate: &last,
			})

			got, err := svc.RecordActivity(context.Background(), u.ID)
			if err != nil {
				t.Fatalf("RecordActivity() error = %v", err)
			}
			if got.CurrentStreak != 3 {
				t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
			}
			if stored := users.Users[u.ID].LastActivityDate; stored == nil || !stored.Equal(tt.now) {
				t.Errorf("LastActivityDate = %v, want %v", stored, tt.now)
			}
		})
	}
}

func TestStreakService_GetStreakData(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name         string
		lastActivity *time.Time
		current      int
		wantCurrent  int
		wantStored   int
	}{
		{"intact streak from yesterday", &yesterday, 4, 4, 4},
		{"lapsed streak is zeroed", &threeDaysAgo, 4, 0, 0},
		{"no activity yet", nil, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestStreakService(t)
			svc.now = func() time.Time { return now }

			u := seedUser(t, users, &user.User{
				Email:            "a@example.com",
				PlanType:         user.PlanTypeFree,
				CurrentStreak:    tt.current,
				LongestStreak:    9,
				LastActivityDate: tt.lastActivity,
			})

			got, err := svc.GetStreakData(context.Background(), u.ID)
			if err != nil {
				t.Fatalf("GetStreakData() error = %v", err)
			}
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != 9 {
				t.Errorf("LongestStreak = %d, want 9 untouched", got.LongestStreak)
			}
			if stored := users.Users[u.ID].CurrentStreak; stored != tt.wantStored {
				t.Errorf("stored CurrentStreak = %d, want %d", stored, tt.wantStored)
			}
		})
	}
}
