package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

type paymentFixture struct {
	svc     *PaymentService
	gateway *testutil.MockGateway
	users   *testutil.MockUserRepository
	promos  *testutil.MockPromoRepository
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedPlans(t, plans)
	promos := testutil.NewMockPromoRepository()
	gateway := testutil.NewMockGateway()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	planSvc := NewPlanService(plans, log)
	promoSvc := NewPromoService(promos, log)
	subsSvc := NewSubscriptionService(users, planSvc, testutil.NewMockSubjectRepository(), testutil.NewMockNoteRepository(), log)

	svc := NewPaymentService(gateway, planSvc, promoSvc, subsSvc,
		"https://app.example.test/success", "https://app.example.test/cancel", log)

	return &paymentFixture{svc: svc, gateway: gateway, users: users, promos: promos}
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	checkout, err := f.svc.CreateCheckout(context.Background(), u.ID, user.PlanTypePro, user.PeriodMonthly, "")
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}
	if checkout.CheckoutURL == "" || checkout.SessionID == "" {
		t.Errorf("checkout = %+v, want session id and url", checkout)
	}

	params := f.gateway.LastParams
	if len(params.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(params.LineItems))
	}
	if params.LineItems[0].Amount != 14900 {
		t.Errorf("amount = %d centavos, want 14900", params.LineItems[0].Amount)
	}
	if params.Metadata["plan"] != user.PlanTypePro || params.Metadata["billing_period"] != user.PeriodMonthly {
		t.Errorf("metadata = %v", params.Metadata)
	}
}

func TestPaymentService_CreateCheckout_PercentagePromo(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	if err := f.promos.Create(context.Background(), &promo.PromoCode{
		Code: "HALF", DiscountType: promo.DiscountPercentage, DiscountValue: 50, IsActive: true,
	}); err != nil {
		t.Fatalf("seed promo: %v", err)
	}

	_, err := f.svc.CreateCheckout(context.Background(), u.ID, user.PlanTypePro, user.PeriodYearly, "HALF")
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}

	if got := f.gateway.LastParams.LineItems[0].Amount; got != 71500 {
		t.Errorf("discounted amount = %d centavos, want 71500", got)
	}
	if f.gateway.LastParams.Metadata["promo_code"] != "HALF" {
		t.Errorf("metadata promo_code = %q, want HALF", f.gateway.LastParams.Metadata["promo_code"])
	}
}

func TestPaymentService_CreateCheckout_Rejections(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	ctx := context.Background()

	tests := []struct {
		name     string
		planType string
		period   string
		promo    string
	}{
		{"free plan needs no checkout", user.PlanTypeFree, user.PeriodMonthly, ""},
		{"bad period", user.PlanTypePro, "weekly", ""},
		{"unknown promo", user.PlanTypePro, user.PeriodMonthly, "NOPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCheckout(ctx, u.ID, tt.planType, tt.period, tt.promo)
			if !errors.IsCode(err, errors.ErrCodeBadRequest) {
				t.Errorf("CreateCheckout() error = %v, want BAD_REQUEST", err)
			}
		})
	}
}

func TestPaymentService_VerifySession_AppliesPlan(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	ctx := context.Background()

	checkout, err := f.svc.CreateCheckout(ctx, u.ID, user.PlanTypePro, user.PeriodMonthly, "")
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}

	// Unpaid session applies nothing
	status, err := f.svc.VerifySession(ctx, u.ID, checkout.SessionID)
	if err != nil {
		t.Fatalf("VerifySession() error = %v", err)
	}
	if status.Paid {
		t.Fatal("session reported paid before payment")
	}
	if f.users.Users[u.ID].PlanType != user.PlanTypeFree {
		t.Errorf("plan changed on unpaid session")
	}

	f.gateway.Sessions[checkout.SessionID].PaymentPaid = true

	status, err = f.svc.VerifySession(ctx, u.ID, checkout.SessionID)
	if err != nil {
		t.Fatalf("VerifySession() error = %v", err)
	}
	if !status.Paid || status.PlanType != user.PlanTypePro {
		t.Errorf("status = %+v, want paid PRO", status)
	}
	if got := f.users.Users[u.ID].PlanType; got != user.PlanTypePro {
		t.Errorf("PlanType = %s, want PRO", got)
	}
}

func TestPaymentService_VerifySession_WrongUser(t *testing.T) {
	f := newPaymentFixture(t)
	owner := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	other := seedUser(t, f.users, &user.User{Email: "b@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	ctx := context.Background()

	checkout, err := f.svc.CreateCheckout(ctx, owner.ID, user.PlanTypePro, user.PeriodMonthly, "")
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}
	f.gateway.Sessions[checkout.SessionID].PaymentPaid = true

	_, err = f.svc.VerifySession(ctx, other.ID, checkout.SessionID)
	if !errors.IsCode(err, errors.ErrCodeForbidden) {
		t.Errorf("VerifySession() by another user error = %v, want FORBIDDEN", err)
	}
}

func webhookBody(eventType string, userID int64, plan, period, promoCode string) []byte {
	meta := fmt.Sprintf(`{"user_id":"%d","plan":"%s","billing_period":"%s"`, userID, plan, period)
	if promoCode != "" {
		meta += fmt.Sprintf(`,"promo_code":"%s"`, promoCode)
	}
	meta += "}"
	return []byte(fmt.Sprintf(
		`{"data":{"attributes":{"type":"%s","data":{"id":"evt_1","attributes":{"metadata":%s}}}}}`,
		eventType, meta))
}

func TestPaymentService_ProcessWebhookEvent(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	ctx := context.Background()

	if err := f.promos.Create(ctx, &promo.PromoCode{
		Code: "LAUNCH", DiscountType: promo.DiscountPercentage, DiscountValue: 10, IsActive: true, MaxUses: 5,
	}); err != nil {
		t.Fatalf("seed promo: %v", err)
	}

	body := webhookBody(EventCheckoutPaid, u.ID, user.PlanTypePro, user.PeriodYearly, "LAUNCH")
	if err := f.svc.ProcessWebhookEvent(ctx, body); err != nil {
		t.Fatalf("ProcessWebhookEvent() error = %v", err)
	}

	stored := f.users.Users[u.ID]
	if stored.PlanType != user.PlanTypePro || stored.DailyCredits != 50 {
		t.Errorf("user after paid event = %s/%d credits, want PRO/50", stored.PlanType, stored.DailyCredits)
	}
	if got := f.promos.Promos["LAUNCH"].CurrentUses; got != 1 {
		t.Errorf("promo uses = %d, want 1", got)
	}

	// Redelivery re-applies the same state without consuming another promo use
	if err := f.svc.ProcessWebhookEvent(ctx, body); err != nil {
		t.Errorf("redelivered event error = %v", err)
	}
	if got := f.users.Users[u.ID].PlanType; got != user.PlanTypePro {
		t.Errorf("PlanType after redelivery = %s, want PRO", got)
	}
	if got := f.promos.Promos["LAUNCH"].CurrentUses; got != 1 {
		t.Errorf("promo uses after redelivery = %d, want 1", got)
	}
}

func TestPaymentService_ProcessWebhookEvent_FailedPayment(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	body := webhookBody(EventPaymentFailed, u.ID, user.PlanTypePro, user.PeriodMonthly, "")
	if err := f.svc.ProcessWebhookEvent(context.Background(), body); err != nil {
		t.Fatalf("ProcessWebhookEvent() error = %v", err)
	}

	stored := f.users.Users[u.ID]
	if stored.SubscriptionStatus == nil || *stored.SubscriptionStatus != user.SubscriptionInactive {
		t.Errorf("SubscriptionStatus = %v, want inactive", stored.SubscriptionStatus)
	}
}

func TestPaymentService_ProcessWebhookEvent_UnknownType(t *testing.T) {
	f := newPaymentFixture(t)
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	body := webhookBody("refund.updated", u.ID, user.PlanTypePro, user.PeriodMonthly, "")
	if err := f.svc.ProcessWebhookEvent(context.Background(), body); err != nil {
		t.Errorf("unknown event type error = %v, want nil (dropped)", err)
	}
	if got := f.users.Users[u.ID].PlanType; got != user.PlanTypeFree {
		t.Errorf("unknown event mutated plan to %s", got)
	}
}

func TestPaymentService_ProcessWebhookEvent_Malformed(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.ProcessWebhookEvent(context.Background(), []byte("not json"))
	if !errors.IsCode(err, errors.ErrCodeBadRequest) {
		t.Errorf("malformed payload error = %v, want BAD_REQUEST", err)
	}
}
