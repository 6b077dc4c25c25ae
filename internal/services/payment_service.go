package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/payment"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/metrics"
)

// Webhook event types the gateway delivers
const (
	EventCheckoutPaid  = "checkout_session.payment.paid"
	EventPaymentPaid   = "payment.paid"
	EventPaymentFailed = "payment.failed"
)

// Checkout is the result of creating a checkout session
type Checkout struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// SessionStatus is the result of verifying a checkout session
type SessionStatus struct {
	SessionID string `json:"session_id"`
	Paid      bool   `json:"paid"`
	PlanType  string `json:"plan_type,omitempty"`
}

// PaymentService drives the checkout flow: session creation with catalog
// pricing and promo discounts, post-redirect verification, and webhook
// event processing.
type PaymentService struct {
	gateway    payment.Gateway
	plans      plan.Service
	promos     promo.Service
	subs       subscription.Service
	successURL string
	cancelURL  string
	logger     *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(gateway payment.Gateway, plans plan.Service, promos promo.Service, subs subscription.Service, successURL, cancelURL string, log *logger.Logger) *PaymentService {
	return &PaymentService{
		gateway:    gateway,
		plans:      plans,
		promos:     promos,
		subs:       subs,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     log,
	}
}

// CreateCheckout builds a checkout session for the requested plan and period.
// Prices come from the catalog; a valid promo code adjusts the amount
// (PERCENTAGE, FIXED_AMOUNT) or rides along in metadata (MONTHS_FREE).
func (s *PaymentService) CreateCheckout(ctx context.Context, userID int64, planType, period, promoCode string) (*Checkout, error) {
	if period != user.PeriodMonthly && period != user.PeriodYearly {
		return nil, errors.BadRequest("Billing period must be monthly or yearly")
	}
	if planType == user.PlanTypeFree {
		return nil, errors.BadRequest("The free plan does not require checkout")
	}

	p, err := s.plans.GetByType(ctx, planType)
	if err != nil {
		return nil, err
	}

	amount := p.Price(period)

	metadata := map[string]string{
		"user_id":        strconv.FormatInt(userID, 10),
		"plan":           p.PlanType,
		"billing_period": period,
	}

	if promoCode != "" {
		validation, err := s.promos.Validate(ctx, promoCode, planType)
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, errors.BadRequest(validation.Reason)
		}

		metadata["promo_code"] = validation.Promo.Code
		switch validation.Promo.DiscountType {
		case promo.DiscountPercentage:
			amount = amount * (1 - validation.Promo.DiscountValue/100)
		case promo.DiscountFixedAmount:
			amount -= validation.Promo.DiscountValue
		case promo.DiscountMonthsFree:
			metadata["free_months"] = strconv.Itoa(int(validation.Promo.DiscountValue))
		}
		if amount < 0 {
			amount = 0
		}
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		Description: fmt.Sprintf("Wisker %s (%s)", p.Name, period),
		LineItems: []payment.LineItem{{
			Name:     fmt.Sprintf("%s plan, %s billing", p.Name, period),
			Amount:   int64(amount * 100), // centavos
			Currency: p.Currency,
			Quantity: 1,
		}},
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"plan_type":  planType,
		"session_id": session.ID,
	}).Info("Checkout session created")

	return &Checkout{SessionID: session.ID, CheckoutURL: session.CheckoutURL}, nil
}

// VerifySession retrieves a session after the success redirect and applies
// the plan if the payment completed. Safe to call repeatedly: a second
// application of the same plan is a no-op transition.
func (s *PaymentService) VerifySession(ctx context.Context, userID int64, sessionID string) (*SessionStatus, error) {
	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	status := &SessionStatus{SessionID: session.ID, Paid: session.PaymentPaid}
	if !session.PaymentPaid {
		return status, nil
	}

	meta := sessionMetadata(session.Metadata)
	if meta.userID != 0 && meta.userID != userID {
		return nil, errors.Forbidden("Checkout session belongs to another user")
	}

	if err := s.applyPaidPlan(ctx, session.ID, meta); err != nil {
		return nil, err
	}
	status.PlanType = meta.planType

	return status, nil
}

// webhookEvent is the gateway's event envelope
type webhookEvent struct {
	Data struct {
		Attributes struct {
			Type string `json:"type"`
			Data struct {
				ID         string `json:"id"`
				Attributes struct {
					Metadata map[string]string `json:"metadata"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

// ProcessWebhookEvent dispatches one verified webhook delivery. Unknown event
// types are logged and dropped; redelivered events re-apply the same state
// and stay harmless.
func (s *PaymentService) ProcessWebhookEvent(ctx context.Context, body []byte) error {
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return errors.BadRequest("Malformed webhook payload")
	}

	eventType := event.Data.Attributes.Type
	resourceID := event.Data.Attributes.Data.ID
	meta := sessionMetadata(event.Data.Attributes.Data.Attributes.Metadata)

	switch eventType {
	case EventCheckoutPaid, EventPaymentPaid:
		if err := s.applyPaidPlan(ctx, resourceID, meta); err != nil {
			metrics.RecordWebhookEvent(eventType, "error")
			return err
		}
	case EventPaymentFailed:
		if meta.userID != 0 && meta.planType != "" {
			if err := s.subs.UpdateSubscriptionPlan(ctx, meta.userID, meta.planType, meta.period, false); err != nil {
				metrics.RecordWebhookEvent(eventType, "error")
				return err
			}
		}
	default:
		s.logger.WithFields(map[string]interface{}{
			"event_type": eventType,
		}).Warn("Dropping unknown webhook event type")
		metrics.RecordWebhookEvent(eventType, "dropped")
		return nil
	}

	metrics.RecordWebhookEvent(eventType, "ok")
	return nil
}

type checkoutMetadata struct {
	userID    int64
	planType  string
	period    string
	promoCode string
}

func sessionMetadata(m map[string]string) checkoutMetadata {
	var meta checkoutMetadata
	if m == nil {
		return meta
	}
	meta.userID, _ = strconv.ParseInt(m["user_id"], 10, 64)
	meta.planType = strings.ToUpper(m["plan"])
	meta.period = m["billing_period"]
	meta.promoCode = m["promo_code"]
	return meta
}

// applyPaidPlan applies the purchased plan and redeems any promo code from
// the checkout metadata. The redemption is keyed on the session or event
// resource ID, so a redelivered event never consumes a second use.
func (s *PaymentService) applyPaidPlan(ctx context.Context, sessionID string, meta checkoutMetadata) error {
	if meta.userID == 0 || meta.planType == "" {
		return errors.BadRequest("Webhook payload is missing checkout metadata")
	}

	if err := s.subs.UpdateSubscriptionPlan(ctx, meta.userID, meta.planType, meta.period, true); err != nil {
		return err
	}

	if meta.promoCode != "" {
		if err := s.promos.Redeem(ctx, meta.promoCode, sessionID); err != nil {
			// The plan is already applied; an exhausted code at this point is
			// an operator follow-up, not a user-facing failure.
			s.logger.WithFields(map[string]interface{}{
				"user_id": meta.userID,
				"code":    meta.promoCode,
			}).ErrorWithErr(err, "Promo redemption failed after payment")
		}
	}

	return nil
}
