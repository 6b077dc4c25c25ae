package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// PlanHandler handles plan catalog requests
type PlanHandler struct {
	plans     plan.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plans plan.Service, log *logger.Logger, val *validator.Validator) *PlanHandler {
	return &PlanHandler{
		plans:     plans,
		logger:    log,
		validator: val,
	}
}

// List returns the active plan catalog for the pricing page
// @Summary List plans
// @Description Get the active plans ordered for display
// @Tags Plans
// @Produce json
// @Success 200 {array} plan.Plan "Active plans"
// @Router /plans [get]
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context(), true)
	if err != nil {
		writeServiceError(w, err, "Failed to load plans")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plans)
}

func planFromRequest(req dto.UpsertPlanRequest) *plan.Plan {
	return &plan.Plan{
		PlanType:           req.PlanType,
		Name:               req.Name,
		Description:        req.Description,
		MonthlyPrice:       req.MonthlyPrice,
		YearlyPrice:        req.YearlyPrice,
		Currency:           req.Currency,
		DailyCredits:       req.DailyCredits,
		NotesLimit:         req.NotesLimit,
		SubjectsLimit:      req.SubjectsLimit,
		Features:           req.Features,
		IsActive:           req.IsActive,
		SortOrder:          req.SortOrder,
		DiscountPercent:    req.DiscountPercent,
		DiscountValidUntil: req.DiscountValidUntil,
	}
}

// AdminList returns the full catalog including inactive plans
// @Summary List all plans (admin)
// @Description Get every catalog entry, active or not
// @Tags Admin
// @Produce json
// @Success 200 {array} plan.Plan "All plans"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/plans [get]
func (h *PlanHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context(), false)
	if err != nil {
		writeServiceError(w, err, "Failed to load plans")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plans)
}

// AdminCreate creates a plan catalog entry
// @Summary Create plan (admin)
// @Description Add a plan catalog entry; the catalog cache is invalidated
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.UpsertPlanRequest true "Plan definition"
// @Success 201 {object} plan.Plan "Created plan"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Plan already exists"
// @Security BearerAuth
// @Router /admin/plans [post]
func (h *PlanHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := planFromRequest(req)
	if err := h.plans.Create(r.Context(), p); err != nil {
		writeServiceError(w, err, "Failed to create plan")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"plan_type": p.PlanType,
	}).Info("Plan created")

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// AdminUpdate updates a plan catalog entry
// @Summary Update plan (admin)
// @Description Update a catalog entry; the catalog cache is invalidated
// @Tags Admin
// @Accept json
// @Produce json
// @Param type path string true "Plan type"
// @Param request body dto.UpsertPlanRequest true "Plan definition"
// @Success 200 {object} plan.Plan "Updated plan"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /admin/plans/{type} [put]
func (h *PlanHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	planType := chi.URLParam(r, "type")

	var req dto.UpsertPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	req.PlanType = planType

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := planFromRequest(req)
	if err := h.plans.Update(r.Context(), p); err != nil {
		writeServiceError(w, err, "Failed to update plan")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"plan_type": planType,
	}).Info("Plan updated")

	utils.WriteSuccess(w, http.StatusOK, p)
}

// AdminDelete removes a plan catalog entry
// @Summary Delete plan (admin)
// @Description Remove a catalog entry; the catalog cache is invalidated
// @Tags Admin
// @Produce json
// @Param type path string true "Plan type"
// @Success 200 {object} utils.SuccessResponse "Plan deleted"
// @Failure 404 {object} utils.ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /admin/plans/{type} [delete]
func (h *PlanHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	planType := chi.URLParam(r, "type")

	if err := h.plans.Delete(r.Context(), planType); err != nil {
		writeServiceError(w, err, "Failed to delete plan")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"plan_type": planType,
	}).Info("Plan deleted")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Plan deleted", nil)
}
