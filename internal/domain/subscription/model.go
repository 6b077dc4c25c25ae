package subscription

import "time"

// Entitlement is the computed view of a user's current credits and
// subscription status
type Entitlement struct {
	PlanType            string     `json:"plan_type"`
	DailyCredits        int        `json:"daily_credits"`
	CreditsUsedToday    int        `json:"credits_used_today"`
	CreditsRemaining    int        `json:"credits_remaining"`
	IsActive            bool       `json:"is_active"`
	SubscriptionStatus  string     `json:"subscription_status,omitempty"`
	SubscriptionPeriod  string     `json:"subscription_period,omitempty"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
}

// LimitCheck is the result of a plan content-limit check
type LimitCheck struct {
	Allowed bool `json:"allowed"`
	Current int  `json:"current"`
	Limit   int  `json:"limit"` // -1 = unlimited
}

// Limit types
const (
	LimitSubjects = "subjects"
	LimitNotes    = "notes"
)

// CreditResetInterval is how long a credit window lasts before the lazy reset
const CreditResetInterval = 24 * time.Hour
