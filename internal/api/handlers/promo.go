package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// PromoHandler handles promo code requests
type PromoHandler struct {
	promos    promo.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(promos promo.Service, log *logger.Logger, val *validator.Validator) *PromoHandler {
	return &PromoHandler{
		promos:    promos,
		logger:    log,
		validator: val,
	}
}

// Validate checks a promo code against a plan selection
// @Summary Validate promo code
// @Description Check whether a code applies to the selected plan
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body dto.ValidatePromoRequest true "Code and plan"
// @Success 200 {object} promo.Validation "Validation outcome"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /promo/validate [post]
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	validation, err := h.promos.Validate(r.Context(), req.Code, req.PlanType)
	if err != nil {
		writeServiceError(w, err, "Failed to validate promo code")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, validation)
}

// AdminList returns all promo codes
// @Summary List promo codes (admin)
// @Tags Admin
// @Produce json
// @Success 200 {array} promo.PromoCode "Promo codes"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/promos [get]
func (h *PromoHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	promos, err := h.promos.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to load promo codes")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, promos)
}

// AdminCreate creates a promo code
// @Summary Create promo code (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreatePromoRequest true "Promo code definition"
// @Success 201 {object} promo.PromoCode "Created promo code"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Promo code already exists"
// @Security BearerAuth
// @Router /admin/promos [post]
func (h *PromoHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := &promo.PromoCode{
		Code:            strings.ToUpper(req.Code),
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
		ApplicablePlans: req.ApplicablePlans,
		IsActive:        req.IsActive,
	}
	if err := h.promos.Create(r.Context(), p); err != nil {
		writeServiceError(w, err, "Failed to create promo code")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"code": p.Code,
	}).Info("Promo code created")

	utils.WriteSuccess(w, http.StatusCreated, p)
}

// AdminUpdate updates a promo code
// @Summary Update promo code (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Param code path string true "Promo code"
// @Param request body dto.UpdatePromoRequest true "Promo code definition"
// @Success 200 {object} promo.PromoCode "Updated promo code"
// @Failure 404 {object} utils.ErrorResponse "Promo code not found"
// @Security BearerAuth
// @Router /admin/promos/{code} [put]
func (h *PromoHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))

	var req dto.UpdatePromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	p := &promo.PromoCode{
		Code:            code,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
		ApplicablePlans: req.ApplicablePlans,
		IsActive:        req.IsActive,
	}
	if err := h.promos.Update(r.Context(), p); err != nil {
		writeServiceError(w, err, "Failed to update promo code")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"code": code,
	}).Info("Promo code updated")

	utils.WriteSuccess(w, http.StatusOK, p)
}

// AdminDelete removes a promo code
// @Summary Delete promo code (admin)
// @Tags Admin
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} utils.SuccessResponse "Promo code deleted"
// @Failure 404 {object} utils.ErrorResponse "Promo code not found"
// @Security BearerAuth
// @Router /admin/promos/{code} [delete]
func (h *PromoHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))

	if err := h.promos.Delete(r.Context(), code); err != nil {
		writeServiceError(w, err, "Failed to delete promo code")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"code": code,
	}).Info("Promo code deleted")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Promo code deleted", nil)
}
