package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wisker-app/wisker/admin/models"
	u "github.com/wisker-app/wisker/admin/utils"
	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/promo"
)

var validPlanTypes = map[string]bool{"FREE": true, "PRO": true, "PREMIUM": true}

var validDiscountTypes = map[string]bool{
	promo.DiscountPercentage:  true,
	promo.DiscountFixedAmount: true,
	promo.DiscountMonthsFree:  true,
}

// Catalog serves the plan catalog and promo codes straight from the same
// tables the API reads, so edits here are authoritative.
type Catalog struct {
	plans  plan.Repository
	promos promo.Repository
}

func NewCatalog(plans plan.Repository, promos promo.Repository) *Catalog {
	return &Catalog{plans: plans, promos: promos}
}

// Plan catalog

func (cc *Catalog) ListPlans(c *gin.Context) {
	out, err := cc.plans.List(c.Request.Context(), false)
	if err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusOK, out)
}

func (cc *Catalog) GetPlan(c *gin.Context) {
	p, err := cc.plans.GetByType(c.Request.Context(), strings.ToUpper(c.Param("type")))
	if err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusOK, p)
}

func (cc *Catalog) UpdatePlan(c *gin.Context) {
	var req models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	planType := strings.ToUpper(c.Param("type"))
	if !validPlanTypes[planType] {
		u.Error(c, http.StatusBadRequest, "unknown plan type")
		return
	}

	ctx := c.Request.Context()
	p, err := cc.plans.GetByType(ctx, planType)
	created := false
	if err != nil {
		p = &plan.Plan{PlanType: planType, Currency: "PHP"}
		created = true
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.MonthlyPrice != nil {
		p.MonthlyPrice = *req.MonthlyPrice
	}
	if req.YearlyPrice != nil {
		p.YearlyPrice = *req.YearlyPrice
	}
	if req.Currency != nil {
		p.Currency = strings.ToUpper(*req.Currency)
	}
	if req.DailyCredits != nil {
		p.DailyCredits = *req.DailyCredits
	}
	if req.NotesLimit != nil {
		p.NotesLimit = *req.NotesLimit
	}
	if req.SubjectsLimit != nil {
		p.SubjectsLimit = *req.SubjectsLimit
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = *req.DiscountPercent
	}
	if req.DiscountValidUntil != nil {
		p.DiscountValidUntil = req.DiscountValidUntil
	}

	if created {
		err = cc.plans.Create(ctx, p)
	} else {
		err = cc.plans.Update(ctx, p)
	}
	if err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusOK, p)
}

// Promo codes

func (cc *Catalog) ListPromos(c *gin.Context) {
	out, err := cc.promos.List(c.Request.Context())
	if err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusOK, out)
}

func (cc *Catalog) CreatePromo(c *gin.Context) {
	var req models.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		u.Error(c, http.StatusBadRequest, "invalid promo")
		return
	}
	if !validDiscountTypes[req.DiscountType] {
		u.Error(c, http.StatusBadRequest, "unknown discount type")
		return
	}
	if req.DiscountValue <= 0 {
		u.Error(c, http.StatusBadRequest, "discount value must be positive")
		return
	}

	p := &promo.PromoCode{
		Code:            strings.ToUpper(req.Code),
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
		ApplicablePlans: req.ApplicablePlans,
		IsActive:        true,
	}
	if err := cc.promos.Create(c.Request.Context(), p); err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusCreated, p)
}

func (cc *Catalog) UpdatePromo(c *gin.Context) {
	var req models.UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	ctx := c.Request.Context()
	p, err := cc.promos.GetByCode(ctx, strings.ToUpper(c.Param("code")))
	if err != nil {
		u.ErrorFrom(c, err)
		return
	}
	if req.DiscountValue != nil {
		p.DiscountValue = *req.DiscountValue
	}
	if req.MaxUses != nil {
		p.MaxUses = *req.MaxUses
	}
	if req.ExpiresAt != nil {
		p.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := cc.promos.Update(ctx, p); err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusOK, p)
}

func (cc *Catalog) DeletePromo(c *gin.Context) {
	if err := cc.promos.Delete(c.Request.Context(), strings.ToUpper(c.Param("code"))); err != nil {
		u.ErrorFrom(c, err)
		return
	}
	u.JSON(c, http.StatusNoContent, nil)
}
