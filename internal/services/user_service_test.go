package services

import (
	"context"
	"testing"

	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

func newTestUserService(t *testing.T) (user.Service, *testutil.MockUserRepository) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedPlans(t, plans)
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewUserService(users, NewPlanService(plans, log), log), users
}

func TestUserService_Create(t *testing.T) {
	svc, _ := newTestUserService(t)

	u, err := svc.Create(context.Background(), "New@Example.com", "newbie", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if u.Email != "new@example.com" {
		t.Errorf("Email = %q, want lowercased", u.Email)
	}
	if u.PlanType != user.PlanTypeFree {
		t.Errorf("PlanType = %s, want FREE", u.PlanType)
	}
	// Allotment and limits come from the catalog
	if u.DailyCredits != 10 || u.SubjectsLimit != 5 || u.NotesLimit != 50 {
		t.Errorf("catalog defaults = %d/%d/%d, want 10/5/50", u.DailyCredits, u.SubjectsLimit, u.NotesLimit)
	}
	if !u.IsEarlyUser || u.EarlyUserNumber == nil || *u.EarlyUserNumber != 1 {
		t.Errorf("early user fields = %v/%v, want true/1", u.IsEarlyUser, u.EarlyUserNumber)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "a@example.com", "first", "hash"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Create(ctx, "a@example.com", "second", "hash")
	if !errors.IsCode(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate Create() error = %v, want CONFLICT", err)
	}
}

func TestUserService_EarlyUserNumbering(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "one@example.com", "one", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(ctx, "two@example.com", "two", "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if *first.EarlyUserNumber != 1 || *second.EarlyUserNumber != 2 {
		t.Errorf("early numbers = %d, %d, want 1, 2", *first.EarlyUserNumber, *second.EarlyUserNumber)
	}
}
