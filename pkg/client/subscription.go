package client

import (
	"context"
	"fmt"
)

// SubscriptionService manages plans, credits and payments
type SubscriptionService struct {
	client *Client
}

// Subscription returns the subscription service
func (c *Client) Subscription() *SubscriptionService {
	return &SubscriptionService{client: c}
}

// Get retrieves the current subscription and credit snapshot
func (s *SubscriptionService) Get(ctx context.Context) (*Entitlement, error) {
	var ent Entitlement
	if err := s.client.doRequest(ctx, "GET", "/api/v1/subscription", nil, &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}

// Cancel downgrades to the FREE plan immediately
func (s *SubscriptionService) Cancel(ctx context.Context) (*Entitlement, error) {
	var ent Entitlement
	if err := s.client.doRequest(ctx, "DELETE", "/api/v1/subscription", nil, &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}

// CheckLimit checks the plan limit for "subjects" or "notes"
func (s *SubscriptionService) CheckLimit(ctx context.Context, limitType string) (*LimitCheck, error) {
	var check LimitCheck
	if err := s.client.doRequest(ctx, "GET", "/api/v1/subscription/limits/"+limitType, nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// ListPlans retrieves the public plan catalog
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", "/api/v1/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ValidatePromo checks a promo code against a plan selection
func (s *SubscriptionService) ValidatePromo(ctx context.Context, code, planType string) (*PromoValidation, error) {
	req := map[string]string{
		"code":     code,
		"planType": planType,
	}
	var validation PromoValidation
	if err := s.client.doRequest(ctx, "POST", "/api/v1/promo/validate", req, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// CheckoutRequest starts a paid plan checkout
type CheckoutRequest struct {
	PlanType  string `json:"planType"` // PRO or PREMIUM
	Period    string `json:"period"`   // monthly or yearly
	PromoCode string `json:"promoCode,omitempty"`
}

// Checkout creates a hosted checkout session for a paid plan
func (s *SubscriptionService) Checkout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	var checkout Checkout
	if err := s.client.doRequest(ctx, "POST", "/api/v1/payments/checkout", req, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// VerifySession polls a checkout session; a paid session activates the plan
func (s *SubscriptionService) VerifySession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var status SessionStatus
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/payments/sessions/%s", sessionID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetStreak retrieves the study streak
func (s *SubscriptionService) GetStreak(ctx context.Context) (*Streak, error) {
	var streak Streak
	if err := s.client.doRequest(ctx, "GET", "/api/v1/streak", nil, &streak); err != nil {
		return nil, err
	}
	return &streak, nil
}

// RecordActivity records study activity for streak tracking
func (s *SubscriptionService) RecordActivity(ctx context.Context) (*Streak, error) {
	var streak Streak
	if err := s.client.doRequest(ctx, "POST", "/api/v1/streak/activity", nil, &streak); err != nil {
		return nil, err
	}
	return &streak, nil
}
