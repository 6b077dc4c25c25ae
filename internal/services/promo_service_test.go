package services

import (
	"context"
	"testing"
	"time"

	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

func newTestPromoService(t *testing.T) (*PromoService, *testutil.MockPromoRepository) {
	t.Helper()
	repo := testutil.NewMockPromoRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewPromoService(repo, log), repo
}

func TestPromoService_Validate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		seed       *promo.PromoCode
		code       string
		planType   string
		wantValid  bool
		wantReason string
	}{
		{
			name:       "unknown code",
			code:       "NOPE",
			planType:   user.PlanTypePro,
			wantReason: "Promo code not found",
		},
		{
			name:       "inactive code",
			seed:       &promo.PromoCode{Code: "OLD", DiscountType: promo.DiscountPercentage, DiscountValue: 10},
			code:       "OLD",
			planType:   user.PlanTypePro,
			wantReason: "Promo code is no longer active",
		},
		{
			name: "expired code",
			seed: &promo.PromoCode{Code: "LATE", DiscountType: promo.DiscountPercentage,
				DiscountValue: 10, IsActive: true, ExpiresAt: &past},
			code:       "LATE",
			planType:   user.PlanTypePro,
			wantReason: "Promo code has expired",
		},
		{
			name: "exhausted code",
			seed: &promo.PromoCode{Code: "GONE", DiscountType: promo.DiscountPercentage,
				DiscountValue: 10, IsActive: true, MaxUses: 1, CurrentUses: 1},
			code:       "GONE",
			planType:   user.PlanTypePro,
			wantReason: "Promo code has reached its usage limit",
		},
		{
			name: "plan mismatch",
			seed: &promo.PromoCode{Code: "PROONLY", DiscountType: promo.DiscountPercentage,
				DiscountValue: 10, IsActive: true, ApplicablePlans: []string{user.PlanTypePro}},
			code:       "PROONLY",
			planType:   user.PlanTypePremium,
			wantReason: "Promo code is not valid for this plan",
		},
		{
			name: "valid for any plan",
			seed: &promo.PromoCode{Code: "WELCOME", DiscountType: promo.DiscountPercentage,
				DiscountValue: 20, IsActive: true, ExpiresAt: &future},
			code:      "welcome", // lookup is case-insensitive
			planType:  user.PlanTypePro,
			wantValid: true,
		},
		{
			name: "unlimited uses never exhaust",
			seed: &promo.PromoCode{Code: "FOREVER", DiscountType: promo.DiscountMonthsFree,
				DiscountValue: 1, IsActive: true, MaxUses: 0, CurrentUses: 9999},
			code:      "FOREVER",
			planType:  user.PlanTypePro,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestPromoService(t)
			svc.now = func() time.Time { return now }
			if tt.seed != nil {
				if err := repo.Create(context.Background(), tt.seed); err != nil {
					t.Fatalf("seed promo: %v", err)
				}
			}

			got, err := svc.Validate(context.Background(), tt.code, tt.planType)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if tt.wantValid && got.Promo == nil {
				t.Error("valid result is missing the promo")
			}
		})
	}
}

func TestPromoService_Redeem(t *testing.T) {
	svc, repo := newTestPromoService(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &promo.PromoCode{
		Code: "ONCE", DiscountType: promo.DiscountPercentage,
		DiscountValue: 50, IsActive: true, MaxUses: 1,
	}); err != nil {
		t.Fatalf("seed promo: %v", err)
	}

	if err := svc.Redeem(ctx, "ONCE", "cs_1"); err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}
	if got := repo.Promos["ONCE"].CurrentUses; got != 1 {
		t.Errorf("CurrentUses = %d, want 1", got)
	}

	// The same session redeeming again is an accounted no-op
	if err := svc.Redeem(ctx, "ONCE", "cs_1"); err != nil {
		t.Errorf("redelivered Redeem() error = %v", err)
	}
	if got := repo.Promos["ONCE"].CurrentUses; got != 1 {
		t.Errorf("CurrentUses after redelivery = %d, want 1", got)
	}

	err := svc.Redeem(ctx, "ONCE", "cs_2")
	if !errors.IsCode(err, errors.ErrCodeConflict) {
		t.Errorf("Redeem() past the limit error = %v, want CONFLICT", err)
	}
	if got := repo.Promos["ONCE"].CurrentUses; got != 1 {
		t.Errorf("CurrentUses after denied redeem = %d, want 1", got)
	}
}

func TestPromoService_Create_Duplicate(t *testing.T) {
	svc, _ := newTestPromoService(t)
	ctx := context.Background()

	p := &promo.PromoCode{Code: "TWICE", DiscountType: promo.DiscountPercentage, DiscountValue: 10, IsActive: true}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := svc.Create(ctx, &promo.PromoCode{Code: "twice", DiscountType: promo.DiscountPercentage, DiscountValue: 10})
	if !errors.IsCode(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate Create() error = %v, want CONFLICT", err)
	}
	appErr, _ := errors.GetAppError(err)
	if appErr != nil && appErr.Message != "Promo code already exists" {
		t.Errorf("duplicate message = %q", appErr.Message)
	}
}

func TestPromoService_Create_UnknownDiscountType(t *testing.T) {
	svc, _ := newTestPromoService(t)

	err := svc.Create(context.Background(), &promo.PromoCode{Code: "BAD", DiscountType: "HALF_OFF"})
	if !errors.IsCode(err, errors.ErrCodeBadRequest) {
		t.Errorf("Create() error = %v, want BAD_REQUEST", err)
	}
}
