package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// SubscriptionHandler handles subscription and credit requests
type SubscriptionHandler struct {
	subscriptions subscription.Service
	logger        *logger.Logger
	validator     *validator.Validator
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subs subscription.Service, log *logger.Logger, val *validator.Validator) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subs,
		logger:        log,
		validator:     val,
	}
}

// Get returns the authenticated user's subscription snapshot
// @Summary Current subscription
// @Description Get the plan, credit balance and subscription status
// @Tags Subscription
// @Produce json
// @Success 200 {object} subscription.Entitlement "Subscription snapshot"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /subscription [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	ent, err := h.subscriptions.GetUserSubscription(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load subscription")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ent)
}

// UpdatePlan changes the authenticated user's plan directly. Paid upgrades go
// through checkout; this endpoint serves downgrades and the FREE plan.
// @Summary Update plan
// @Description Change the plan without payment (FREE plan and downgrades)
// @Tags Subscription
// @Accept json
// @Produce json
// @Param request body dto.UpdatePlanRequest true "Target plan"
// @Success 200 {object} subscription.Entitlement "Updated subscription"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /subscription/plan [put]
func (h *SubscriptionHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	// Paid plans require a completed checkout session; only the FREE plan may
	// be assigned directly.
	if req.PlanType != "FREE" {
		utils.WriteError(w, errors.BadRequest("Paid plans require checkout"))
		return
	}

	if err := h.subscriptions.UpdateSubscriptionPlan(r.Context(), userID, req.PlanType, req.Period, true); err != nil {
		h.logger.ErrorWithErr(err, "Failed to update plan")
		writeServiceError(w, err, "Failed to update plan")
		return
	}

	ent, err := h.subscriptions.GetUserSubscription(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load subscription")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ent)
}

// Cancel downgrades the authenticated user to the FREE plan
// @Summary Cancel subscription
// @Description Downgrade to the FREE plan immediately
// @Tags Subscription
// @Produce json
// @Success 200 {object} subscription.Entitlement "Downgraded subscription"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /subscription [delete]
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	if err := h.subscriptions.CancelSubscription(r.Context(), userID); err != nil {
		h.logger.ErrorWithErr(err, "Failed to cancel subscription")
		writeServiceError(w, err, "Failed to cancel subscription")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Subscription canceled")

	ent, err := h.subscriptions.GetUserSubscription(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load subscription")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ent)
}

// GetLimit reports whether the user may create another subject or note
// @Summary Check content limit
// @Description Check the plan limit for a content type (subjects or notes)
// @Tags Subscription
// @Produce json
// @Param type path string true "Limit type" Enums(subjects, notes)
// @Success 200 {object} subscription.LimitCheck "Limit check result"
// @Failure 400 {object} utils.ErrorResponse "Unknown limit type"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /subscription/limits/{type} [get]
func (h *SubscriptionHandler) GetLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	limitType := chi.URLParam(r, "type")
	if limitType != subscription.LimitSubjects && limitType != subscription.LimitNotes {
		utils.WriteError(w, errors.BadRequest("Unknown limit type"))
		return
	}

	check, err := h.subscriptions.CheckPlanLimit(r.Context(), userID, limitType)
	if err != nil {
		writeServiceError(w, err, "Failed to check limit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, check)
}
