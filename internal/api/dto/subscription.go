package dto

// UpdatePlanRequest changes the authenticated user's plan directly (used for
// downgrades and the FREE plan; paid upgrades go through checkout)
type UpdatePlanRequest struct {
	PlanType string `json:"planType" validate:"required,oneof=FREE PRO PREMIUM"`
	Period   string `json:"period,omitempty" validate:"omitempty,oneof=monthly yearly"`
}

// CheckoutRequest creates a payment checkout session
type CheckoutRequest struct {
	PlanType  string `json:"planType" validate:"required,oneof=PRO PREMIUM"`
	Period    string `json:"period" validate:"required,oneof=monthly yearly"`
	PromoCode string `json:"promoCode,omitempty"`
}

// ValidatePromoRequest checks a promo code against a plan selection
type ValidatePromoRequest struct {
	Code     string `json:"code" validate:"required"`
	PlanType string `json:"planType" validate:"required,oneof=FREE PRO PREMIUM"`
}
