package dto

import "time"

// UpsertPlanRequest creates or updates a plan catalog entry (admin)
type UpsertPlanRequest struct {
	PlanType           string     `json:"planType" validate:"required,oneof=FREE PRO PREMIUM"`
	Name               string     `json:"name" validate:"required,min=1,max=100"`
	Description        string     `json:"description,omitempty" validate:"omitempty,max=500"`
	MonthlyPrice       float64    `json:"monthlyPrice" validate:"min=0"`
	YearlyPrice        float64    `json:"yearlyPrice" validate:"min=0"`
	Currency           string     `json:"currency" validate:"required,len=3"`
	DailyCredits       int        `json:"dailyCredits" validate:"min=-1"`
	NotesLimit         int        `json:"notesLimit" validate:"min=-1"`
	SubjectsLimit      int        `json:"subjectsLimit" validate:"min=-1"`
	Features           []string   `json:"features,omitempty"`
	IsActive           bool       `json:"isActive"`
	SortOrder          int        `json:"sortOrder"`
	DiscountPercent    float64    `json:"discountPercent,omitempty" validate:"min=0,max=100"`
	DiscountValidUntil *time.Time `json:"discountValidUntil,omitempty"`
}

// CreatePromoRequest creates a promo code (admin)
type CreatePromoRequest struct {
	Code            string     `json:"code" validate:"required,min=3,max=50"`
	DiscountType    string     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT MONTHS_FREE"`
	DiscountValue   float64    `json:"discountValue" validate:"gt=0"`
	MaxUses         int        `json:"maxUses" validate:"min=0"` // 0 = unlimited
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	ApplicablePlans []string   `json:"applicablePlans,omitempty" validate:"dive,oneof=FREE PRO PREMIUM"`
	IsActive        bool       `json:"isActive"`
}

// UpdatePromoRequest updates a promo code (admin)
type UpdatePromoRequest struct {
	DiscountType    string     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT MONTHS_FREE"`
	DiscountValue   float64    `json:"discountValue" validate:"gt=0"`
	MaxUses         int        `json:"maxUses" validate:"min=0"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	ApplicablePlans []string   `json:"applicablePlans,omitempty" validate:"dive,oneof=FREE PRO PREMIUM"`
	IsActive        bool       `json:"isActive"`
}
