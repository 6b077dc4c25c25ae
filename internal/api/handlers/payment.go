package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/payment"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
	"github.com/wisker-app/wisker/internal/services"
)

// maxWebhookBody caps webhook payload reads
const maxWebhookBody = 1 << 20

// PaymentHandler handles checkout and webhook requests
type PaymentHandler struct {
	payments  *services.PaymentService
	config    *config.Config
	logger    *logger.Logger
	validator *validator.Validator
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *services.PaymentService, cfg *config.Config, log *logger.Logger, val *validator.Validator) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		config:    cfg,
		logger:    log,
		validator: val,
	}
}

// Checkout creates a payment checkout session for a paid plan
// @Summary Create checkout session
// @Description Start a hosted checkout for a paid plan, optionally discounted by a promo code
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Plan, billing period and optional promo code"
// @Success 201 {object} services.Checkout "Checkout session"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 502 {object} utils.ErrorResponse "Payment gateway error"
// @Security BearerAuth
// @Router /payments/checkout [post]
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	checkout, err := h.payments.CreateCheckout(r.Context(), userID, req.PlanType, req.Period, req.PromoCode)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create checkout session")
		writeServiceError(w, err, "Failed to create checkout session")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"plan_type":  req.PlanType,
		"session_id": checkout.SessionID,
	}).Info("Checkout session created")

	utils.WriteSuccess(w, http.StatusCreated, checkout)
}

// VerifySession checks a checkout session and applies the plan when paid
// @Summary Verify checkout session
// @Description Poll a session's payment status; a paid session activates the plan
// @Tags Payment
// @Produce json
// @Param id path string true "Checkout session ID"
// @Success 200 {object} services.SessionStatus "Session status"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Session belongs to another user"
// @Security BearerAuth
// @Router /payments/sessions/{id} [get]
func (h *PaymentHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.WriteError(w, errors.BadRequest("Missing session ID"))
		return
	}

	status, err := h.payments.VerifySession(r.Context(), userID, sessionID)
	if err != nil {
		writeServiceError(w, err, "Failed to verify session")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, status)
}

// Webhook receives payment gateway events. The signature is verified against
// the configured webhook secret; without a secret (development only, startup
// validation refuses it in production) events are accepted unverified.
// @Summary Payment webhook
// @Description Receive signed payment events from the gateway
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Event processed"
// @Failure 400 {object} utils.ErrorResponse "Malformed event"
// @Failure 401 {object} utils.ErrorResponse "Invalid signature"
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Failed to read request body"))
		return
	}

	if secret := h.config.Payment.WebhookSecret; secret != "" {
		if err := payment.VerifySignature(body, r.Header.Get("Paymongo-Signature"), secret); err != nil {
			h.logger.Warn("Webhook signature verification failed")
			writeServiceError(w, err, "Invalid webhook signature")
			return
		}
	} else {
		h.logger.Warn("Webhook secret not configured, accepting unverified event")
	}

	if err := h.payments.ProcessWebhookEvent(r.Context(), body); err != nil {
		h.logger.ErrorWithErr(err, "Failed to process webhook event")
		writeServiceError(w, err, "Failed to process webhook event")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Event processed", nil)
}
