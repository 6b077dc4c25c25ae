package user

import "time"

// User represents a user in the system. Plan limits and the daily credit
// allotment are denormalized from the plan catalog at assignment time; they are
// authoritative only immediately after a credit reset or plan change.
type User struct {
	ID                    int64      `json:"id"`
	Email                 string     `json:"email"`
	Username              string     `json:"username,omitempty"`
	PasswordHash          string     `json:"-"`
	Role                  string     `json:"role"`
	PlanType              string     `json:"plan_type"`
	DailyCredits          int        `json:"daily_credits"`
	CreditsUsedToday      int        `json:"credits_used_today"`
	LastCreditReset       time.Time  `json:"last_credit_reset"`
	SubscriptionStatus    *string    `json:"subscription_status,omitempty"`
	SubscriptionPeriod    string     `json:"subscription_period,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
	NotesLimit            int        `json:"notes_limit"`
	SubjectsLimit         int        `json:"subjects_limit"`
	CurrentStreak         int        `json:"current_streak"`
	LongestStreak         int        `json:"longest_streak"`
	LastActivityDate      *time.Time `json:"last_activity_date,omitempty"`
	IsEarlyUser           bool       `json:"is_early_user"`
	EarlyUserNumber       *int       `json:"early_user_number,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Plan types
const (
	PlanTypeFree    = "FREE"
	PlanTypePro     = "PRO"
	PlanTypePremium = "PREMIUM"
)

// Billing periods
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Subscription statuses
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
	SubscriptionCanceled = "canceled"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UnlimitedSentinel marks a limit as unlimited
const UnlimitedSentinel = -1

// PlanChange captures all fields written in a single plan transition
type PlanChange struct {
	PlanType      string
	DailyCredits  int
	NotesLimit    int
	SubjectsLimit int
	Status        string
	Period        string
	StartDate     *time.Time
	EndDate       *time.Time
	ChangedAt     time.Time
}

// Streak is the streak view of a user
type Streak struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}
