package services

import (
	"context"
	"testing"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

func seedPlans(t *testing.T, plans *testutil.MockPlanRepository) {
	t.Helper()
	for _, p := range testPlans() {
		if err := plans.Create(context.Background(), p); err != nil {
			t.Fatalf("seed plan %s: %v", p.PlanType, err)
		}
	}
}

func newTestSubscriptionService(t *testing.T) (*SubscriptionService, *testutil.MockUserRepository) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedPlans(t, plans)
	subjects := testutil.NewMockSubjectRepository()
	notes := testutil.NewMockNoteRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	svc := NewSubscriptionService(users, NewPlanService(plans, log), subjects, notes, log)
	return svc, users
}

func seedUser(t *testing.T, users *testutil.MockUserRepository, u *user.User) *user.User {
	t.Helper()
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSubscriptionService_GetUserSubscription(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, users, &user.User{
		Email:            "a@example.com",
		PlanType:         user.PlanTypeFree,
		DailyCredits:     10,
		CreditsUsedToday: 4,
		LastCreditReset:  now.Add(-2 * time.Hour),
	})

	ent, err := svc.GetUserSubscription(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUserSubscription() error = %v", err)
	}
	if ent.CreditsRemaining != 6 {
		t.Errorf("CreditsRemaining = %d, want 6", ent.CreditsRemaining)
	}
	if ent.CreditsUsedToday != 4 {
		t.Errorf("CreditsUsedToday = %d, want 4", ent.CreditsUsedToday)
	}
}

func TestSubscriptionService_GetUserSubscription_LazyReset(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, users, &user.User{
		Email:            "a@example.com",
		PlanType:         user.PlanTypeFree,
		DailyCredits:     10,
		CreditsUsedToday: 9,
		LastCreditReset:  now.Add(-25 * time.Hour),
	})

	ent, err := svc.GetUserSubscription(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUserSubscription() error = %v", err)
	}
	if ent.CreditsUsedToday != 0 || ent.CreditsRemaining != 10 {
		t.Errorf("post-reset snapshot = used %d remaining %d, want 0/10", ent.CreditsUsedToday, ent.CreditsRemaining)
	}

	stored := users.Users[u.ID]
	if !stored.LastCreditReset.Equal(now) {
		t.Errorf("LastCreditReset = %v, want %v", stored.LastCreditReset, now)
	}

	// An immediate second call must not reset again
	stored.CreditsUsedToday = 3
	ent, err = svc.GetUserSubscription(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUserSubscription() second call error = %v", err)
	}
	if ent.CreditsUsedToday != 3 {
		t.Errorf("second call CreditsUsedToday = %d, want 3 (no reset)", ent.CreditsUsedToday)
	}
}

func TestSubscriptionService_GetUserSubscription_NotFound(t *testing.T) {
	svc, _ := newTestSubscriptionService(t)

	_, err := svc.GetUserSubscription(context.Background(), 42)
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetUserSubscription() error = %v, want NOT_FOUND", err)
	}
}

func TestSubscriptionService_ConsumeCredits(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// 10-credit allotment with 9 already spent
	u := seedUser(t, users, &user.User{
		Email:            "a@example.com",
		PlanType:         user.PlanTypeFree,
		DailyCredits:     10,
		CreditsUsedToday: 9,
		LastCreditReset:  now.Add(-time.Hour),
	})
	ctx := context.Background()

	ok, err := svc.CheckCredits(ctx, u.ID, 1)
	if err != nil || !ok {
		t.Fatalf("CheckCredits(1) = %v, %v, want true", ok, err)
	}
	ok, err = svc.CheckCredits(ctx, u.ID, 2)
	if err != nil || ok {
		t.Fatalf("CheckCredits(2) = %v, %v, want false", ok, err)
	}

	if err := svc.ConsumeCredits(ctx, u.ID, 1); err != nil {
		t.Fatalf("ConsumeCredits(1) error = %v", err)
	}
	if got := users.Users[u.ID].CreditsUsedToday; got != 10 {
		t.Errorf("CreditsUsedToday = %d, want 10", got)
	}

	err = svc.ConsumeCredits(ctx, u.ID, 1)
	if !errors.IsCode(err, errors.ErrCodeInsufficientCredits) {
		t.Errorf("ConsumeCredits() on empty allotment error = %v, want INSUFFICIENT_CREDITS", err)
	}
	if got := users.Users[u.ID].CreditsUsedToday; got != 10 {
		t.Errorf("CreditsUsedToday after denial = %d, want 10 unchanged", got)
	}
}

func TestSubscriptionService_UpdateSubscriptionPlan(t *testing.T) {
	svc, users := newTestSubscriptionService(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u := seedUser(t, users, &user.User{
		Email:            "a@example.com",
		PlanType:         user.PlanTypeFree,
		DailyCredits:     10,
		CreditsUsedToday: 7,
		LastCreditReset:  now.Add(-time.Hour),
	})
	ctx := context.Background()

	if err := svc.UpdateSubscriptionPlan(ctx, u.ID, user.PlanTypePro, user.PeriodYearly, true); err != nil {
		t.Fatalf("UpdateSubscriptionPlan() error = %v", err)
	}

	stored := users.Users[u.ID]
	if stored.PlanType != user.PlanTypePro {
		t.Errorf("PlanType = %s, want PRO", stored.PlanType)
	}
	if stored.DailyCredits != 50 {
		t.Errorf("DailyCredits = %d, want 50", stored.DailyCredits)
	}
	if stored.CreditsUsedToday != 0 {
		t.Errorf("CreditsUsedToday = %d, want 0 after plan change", stored.CreditsUsedToday)
	}
	wantEnd := now.AddDate(1, 0, 0)
	if stored.SubscriptionEndDate == nil || !stored.SubscriptionEndDate.Equal(wantEnd) {
		t.Errorf("SubscriptionEndDate = %v, want %v", stored.SubscriptionEndDate, wantEnd)
	}
	if stored.SubscriptionStatus == nil || *stored.SubscriptionStatus != user.SubscriptionActive {
		t.Errorf("SubscriptionStatus = %v, want active", stored.SubscriptionStatus)
	}
}

func TestSubscriptionService_UpdateSubscriptionPlan_FailedPayment(t *testing.T) {
	svc, users := newTestSubscriptionService(t)

	u := seedUser(t, users, &user.User{
		Email:        "a@example.com",
		PlanType:     user.PlanTypeFree,
		DailyCredits: 10,
	})

	if err := svc.UpdateSubscriptionPlan(context.Background(), u.ID, user.PlanTypePro, user.PeriodMonthly, false); err != nil {
		t.Fatalf("UpdateSubscriptionPlan() error = %v", err)
	}

	stored := users.Users[u.ID]
	if stored.SubscriptionStatus == nil || *stored.SubscriptionStatus != user.SubscriptionInactive {
		t.Errorf("SubscriptionStatus = %v, want inactive", stored.SubscriptionStatus)
	}
	if stored.SubscriptionStartDate != nil || stored.SubscriptionEndDate != nil {
		t.Errorf("subscription dates = %v/%v, want nil/nil", stored.SubscriptionStartDate, stored.SubscriptionEndDate)
	}
}

func TestSubscriptionService_CancelSubscription(t *testing.T) {
	svc, users := newTestSubscriptionService(t)

	u := seedUser(t, users, &user.User{
		Email:        "a@example.com",
		PlanType:     user.PlanTypePro,
		DailyCredits: 50,
	})

	if err := svc.CancelSubscription(context.Background(), u.ID); err != nil {
		t.Fatalf("CancelSubscription() error = %v", err)
	}

	stored := users.Users[u.ID]
	if stored.PlanType != user.PlanTypeFree {
		t.Errorf("PlanType = %s, want FREE", stored.PlanType)
	}
	if stored.DailyCredits != 10 {
		t.Errorf("DailyCredits = %d, want 10", stored.DailyCredits)
	}
	if stored.SubscriptionEndDate != nil {
		t.Errorf("SubscriptionEndDate = %v, want nil for FREE", stored.SubscriptionEndDate)
	}
}

func TestSubscriptionService_CheckPlanLimit(t *testing.T) {
	tests := []struct {
		name        string
		planType    string
		limitType   string
		existing    int
		wantAllowed bool
		wantLimit   int
	}{
		{"free under subject limit", user.PlanTypeFree, subscription.LimitSubjects, 4, true, 5},
		{"free at subject limit", user.PlanTypeFree, subscription.LimitSubjects, 5, false, 5},
		{"premium unlimited subjects", user.PlanTypePremium, subscription.LimitSubjects, 500, true, -1},
		{"free under note limit", user.PlanTypeFree, subscription.LimitNotes, 0, true, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := testutil.NewMockUserRepository()
			plans := testutil.NewMockPlanRepository()
			seedPlans(t, plans)
			subjects := testutil.NewMockSubjectRepository()
			notes := testutil.NewMockNoteRepository()
			log := logger.New(logger.Config{Level: "error", Format: "json"})
			svc := NewSubscriptionService(users, NewPlanService(plans, log), subjects, notes, log)

			u := seedUser(t, users, &user.User{
				Email:        "a@example.com",
				PlanType:     tt.planType,
				DailyCredits: 10,
			})
			ctx := context.Background()
			for i := 0; i < tt.existing; i++ {
				switch tt.limitType {
				case subscription.LimitSubjects:
					subjects.CreateWithinLimit(ctx, &subject.Subject{UserID: u.ID, Name: "s"}, -1)
				case subscription.LimitNotes:
					notes.CreateWithinLimit(ctx, &note.Note{UserID: u.ID, SubjectID: 1, Title: "n"}, -1)
				}
			}

			check, err := svc.CheckPlanLimit(ctx, u.ID, tt.limitType)
			if err != nil {
				t.Fatalf("CheckPlanLimit() error = %v", err)
			}
			if check.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", check.Allowed, tt.wantAllowed)
			}
			if check.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", check.Limit, tt.wantLimit)
			}
			if check.Current != tt.existing {
				t.Errorf("Current = %d, want %d", check.Current, tt.existing)
			}
		})
	}
}

func TestSubscriptionService_OperationCost(t *testing.T) {
	svc, _ := newTestSubscriptionService(t)

	tests := []struct {
		operation string
		want      int
	}{
		{"quiz", 2},
		{"flashcards", 2},
		{"concept-map", 3},
		{"summary", 1},
		{"process-note", 1},
		{"analyze-document", 2},
		{"something-else", 1},
	}

	for _, tt := range tests {
		if got := svc.OperationCost(tt.operation); got != tt.want {
			t.Errorf("OperationCost(%q) = %d, want %d", tt.operation, got, tt.want)
		}
	}
}
