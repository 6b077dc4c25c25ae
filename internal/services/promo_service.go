package services

import (
	"context"
	"strings"
	"time"

	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/metrics"
)

// PromoService implements promo.Service
type PromoService struct {
	repo   promo.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewPromoService creates a new promo code service
func NewPromoService(repo promo.Repository, log *logger.Logger) *PromoService {
	return &PromoService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Validate checks a code against a plan selection. The checks run in a fixed
// order and the first failure wins, so the caller always sees a single
// reason.
func (s *PromoService) Validate(ctx context.Context, code, planType string) (*promo.Validation, error) {
	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return &promo.Validation{Valid: false, Reason: "Promo code not found"}, nil
		}
		return nil, err
	}

	if !p.IsActive {
		return &promo.Validation{Valid: false, Reason: "Promo code is no longer active"}, nil
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(s.now()) {
		return &promo.Validation{Valid: false, Reason: "Promo code has expired"}, nil
	}
	if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
		return &promo.Validation{Valid: false, Reason: "Promo code has reached its usage limit"}, nil
	}
	if len(p.ApplicablePlans) > 0 && !containsPlan(p.ApplicablePlans, planType) {
		return &promo.Validation{Valid: false, Reason: "Promo code is not valid for this plan"}, nil
	}

	return &promo.Validation{Valid: true, Promo: p}, nil
}

// Redeem consumes one use of the code. The repository applies the increment
// conditionally, so a code at its usage limit is never over-redeemed no
// matter how many redemptions race. Passing the checkout session ID keys the
// redemption, so a redelivered payment event cannot consume a second use.
func (s *PromoService) Redeem(ctx context.Context, code, sessionID string) error {
	applied, err := s.repo.Redeem(ctx, code, sessionID)
	if err != nil {
		return err
	}
	if !applied {
		return errors.Conflict("Promo code has reached its usage limit")
	}

	metrics.RecordPromoRedemption()
	s.logger.WithFields(map[string]interface{}{
		"code": strings.ToUpper(code),
	}).Info("Promo code redeemed")

	return nil
}

// Create creates a promo code
func (s *PromoService) Create(ctx context.Context, p *promo.PromoCode) error {
	switch p.DiscountType {
	case promo.DiscountMonthsFree, promo.DiscountPercentage, promo.DiscountFixedAmount:
	default:
		return errors.BadRequest("Unknown discount type: " + p.DiscountType)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"code": p.Code,
	}).Info("Promo code created")

	return nil
}

// List retrieves all promo codes
func (s *PromoService) List(ctx context.Context) ([]*promo.PromoCode, error) {
	return s.repo.List(ctx)
}

// Update updates a promo code
func (s *PromoService) Update(ctx context.Context, p *promo.PromoCode) error {
	return s.repo.Update(ctx, p)
}

// Delete removes a promo code
func (s *PromoService) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}

func containsPlan(plans []string, planType string) bool {
	for _, p := range plans {
		if strings.EqualFold(p, planType) {
			return true
		}
	}
	return false
}
