package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/testutil"
)

func newCatalogFixture(t *testing.T) (*gin.Engine, *testutil.MockPlanRepository, *testutil.MockPromoRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	plans := testutil.NewMockPlanRepository()
	promos := testutil.NewMockPromoRepository()
	catalog := NewCatalog(plans, promos)

	r := gin.New()
	r.GET("/plans", catalog.ListPlans)
	r.GET("/plans/:type", catalog.GetPlan)
	r.PUT("/plans/:type", catalog.UpdatePlan)
	r.GET("/promos", catalog.ListPromos)
	r.POST("/promos", catalog.CreatePromo)
	r.PUT("/promos/:code", catalog.UpdatePromo)
	r.DELETE("/promos/:code", catalog.DeletePromo)

	return r, plans, promos
}

func TestCatalog_UpdatePlan(t *testing.T) {
	r, plans, _ := newCatalogFixture(t)
	plans.Plans["PRO"] = &plan.Plan{
		ID: 1, PlanType: "PRO", Name: "Pro", Currency: "PHP",
		MonthlyPrice: 149, YearlyPrice: 1430, DailyCredits: 50, IsActive: true,
	}

	req := httptest.NewRequest(http.MethodPut, "/plans/pro",
		strings.NewReader(`{"monthlyPrice":199,"dailyCredits":60}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	stored := plans.Plans["PRO"]
	if stored.MonthlyPrice != 199 || stored.DailyCredits != 60 {
		t.Errorf("stored plan = %.0f/%d credits, want 199/60", stored.MonthlyPrice, stored.DailyCredits)
	}
	if stored.YearlyPrice != 1430 {
		t.Errorf("untouched YearlyPrice = %.0f, want 1430", stored.YearlyPrice)
	}
}

func TestCatalog_UpdatePlan_UnknownType(t *testing.T) {
	r, _, _ := newCatalogFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/plans/PLATINUM", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCatalog_CreatePromo(t *testing.T) {
	r, _, promos := newCatalogFixture(t)

	body := `{"code":"launch20","discountType":"PERCENTAGE","discountValue":20,"maxUses":100}`
	req := httptest.NewRequest(http.MethodPost, "/promos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if _, ok := promos.Promos["LAUNCH20"]; !ok {
		t.Error("promo not stored under its upper-cased code")
	}

	// Duplicate code is a conflict
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/promos", strings.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
}

func TestCatalog_ListPromos(t *testing.T) {
	r, _, promos := newCatalogFixture(t)
	promos.Promos["WELCOME"] = &promo.PromoCode{
		ID: 1, Code: "WELCOME", DiscountType: promo.DiscountMonthsFree,
		DiscountValue: 1, IsActive: true,
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/promos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []*promo.PromoCode
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Code != "WELCOME" {
		t.Errorf("promos = %+v, want [WELCOME]", got)
	}
}
