package services

import (
	"context"
	"testing"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

func TestPlanService_CacheInvalidation(t *testing.T) {
	repo := testutil.NewMockPlanRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewPlanService(repo, log)
	ctx := context.Background()

	for _, p := range testPlans() {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("seed plan: %v", err)
		}
	}

	p, err := svc.GetByType(ctx, user.PlanTypePro)
	if err != nil {
		t.Fatalf("GetByType() error = %v", err)
	}
	if p.DailyCredits != 50 {
		t.Errorf("DailyCredits = %d, want 50", p.DailyCredits)
	}

	listCalls := repo.ListCalls
	if _, err := svc.GetByType(ctx, user.PlanTypeFree); err != nil {
		t.Fatalf("cached GetByType() error = %v", err)
	}
	if repo.ListCalls != listCalls {
		t.Errorf("cached read hit the repository (%d list calls)", repo.ListCalls)
	}

	// A catalog write invalidates the cache; the next read sees the new value
	updated := *repo.Plans[user.PlanTypePro]
	updated.DailyCredits = 75
	if err := svc.Update(ctx, &updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	p, err = svc.GetByType(ctx, user.PlanTypePro)
	if err != nil {
		t.Fatalf("GetByType() after update error = %v", err)
	}
	if p.DailyCredits != 75 {
		t.Errorf("DailyCredits after update = %d, want 75", p.DailyCredits)
	}
}

func TestPlanService_GetByType_Unknown(t *testing.T) {
	repo := testutil.NewMockPlanRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewPlanService(repo, log)

	if _, err := svc.GetByType(context.Background(), "ENTERPRISE"); err == nil {
		t.Error("GetByType() unknown plan returned nil error")
	}
}

func TestPlanService_List_ActiveOnly(t *testing.T) {
	repo := testutil.NewMockPlanRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewPlanService(repo, log)
	ctx := context.Background()

	for _, p := range testPlans() {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("seed plan: %v", err)
		}
	}
	if err := repo.Create(ctx, &plan.Plan{PlanType: "LEGACY", Name: "Legacy", IsActive: false}); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	active, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List(true) error = %v", err)
	}
	if len(active) != 3 {
		t.Errorf("active plans = %d, want 3", len(active))
	}

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List(false) error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all plans = %d, want 4", len(all))
	}
}
