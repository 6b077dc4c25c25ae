package promo

import "time"

// PromoCode is a redeemable discount token. Codes are stored and compared in
// upper case.
type PromoCode struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	DiscountType    string     `json:"discount_type"`
	DiscountValue   float64    `json:"discount_value"`
	MaxUses         int        `json:"max_uses"` // 0 = unlimited
	CurrentUses     int        `json:"current_uses"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ApplicablePlans []string   `json:"applicable_plans"` // empty = all plans
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Discount types
const (
	DiscountMonthsFree  = "MONTHS_FREE"
	DiscountPercentage  = "PERCENTAGE"
	DiscountFixedAmount = "FIXED_AMOUNT"
)

// Validation is the outcome of validating a code against a plan selection
type Validation struct {
	Valid  bool       `json:"valid"`
	Reason string     `json:"reason,omitempty"`
	Promo  *PromoCode `json:"promo,omitempty"`
}
