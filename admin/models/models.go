package models

import "time"

// ---- Plan catalog ----

type UpsertPlanRequest struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	MonthlyPrice       *float64   `json:"monthlyPrice"`
	YearlyPrice        *float64   `json:"yearlyPrice"`
	Currency           *string    `json:"currency"`
	DailyCredits       *int       `json:"dailyCredits"`
	NotesLimit         *int       `json:"notesLimit"`
	SubjectsLimit      *int       `json:"subjectsLimit"`
	Features           []string   `json:"features"`
	IsActive           *bool      `json:"isActive"`
	SortOrder          *int       `json:"sortOrder"`
	DiscountPercent    *float64   `json:"discountPercent"`
	DiscountValidUntil *time.Time `json:"discountValidUntil"`
}

// ---- Promo codes ----

type CreatePromoRequest struct {
	Code            string     `json:"code"`
	DiscountType    string     `json:"discountType"`
	DiscountValue   float64    `json:"discountValue"`
	MaxUses         int        `json:"maxUses"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	ApplicablePlans []string   `json:"applicablePlans"`
}

type UpdatePromoRequest struct {
	DiscountValue *float64   `json:"discountValue"`
	MaxUses       *int       `json:"maxUses"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	IsActive      *bool      `json:"isActive"`
}
