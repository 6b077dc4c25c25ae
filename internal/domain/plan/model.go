package plan

import "time"

// Plan is one row of the plan catalog. The catalog is the single authoritative
// source for credit allotments and content limits; user rows carry a snapshot
// taken at assignment time.
type Plan struct {
	ID                 int64      `json:"id"`
	PlanType           string     `json:"plan_type"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	MonthlyPrice       float64    `json:"monthly_price"`
	YearlyPrice        float64    `json:"yearly_price"`
	Currency           string     `json:"currency"`
	DailyCredits       int        `json:"daily_credits"`
	NotesLimit         int        `json:"notes_limit"`
	SubjectsLimit      int        `json:"subjects_limit"`
	Features           []string   `json:"features"`
	IsActive           bool       `json:"is_active"`
	SortOrder          int        `json:"sort_order"`
	DiscountPercent    float64    `json:"discount_percent,omitempty"`
	DiscountValidUntil *time.Time `json:"discount_valid_until,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Price returns the price for a billing period ("monthly" or "yearly")
func (p *Plan) Price(period string) float64 {
	if period == "yearly" {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}
