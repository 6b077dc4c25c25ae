package client

import "time"

// User represents a user account
type User struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username,omitempty"`
	Role            string     `json:"role"`
	PlanType        string     `json:"planType"`
	IsEarlyUser     bool       `json:"isEarlyUser"`
	EarlyUserNumber *int       `json:"earlyUserNumber,omitempty"`
	CurrentStreak   int        `json:"currentStreak"`
	LongestStreak   int        `json:"longestStreak"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastActivity    *time.Time `json:"lastActivity,omitempty"`
}

// AuthResponse is returned by login, register and refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Subject is a study subject grouping notes
type Subject struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Note is a study note within a subject
type Note struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FileURL   *string   `json:"file_url,omitempty"`
	FileType  *string   `json:"file_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LearningTool is a generated study artifact derived from a note
type LearningTool struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	ToolType  string    `json:"tool_type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Plan is one entry of the plan catalog
type Plan struct {
	PlanType      string   `json:"plan_type"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	MonthlyPrice  float64  `json:"monthly_price"`
	YearlyPrice   float64  `json:"yearly_price"`
	Currency      string   `json:"currency"`
	DailyCredits  int      `json:"daily_credits"`
	NotesLimit    int      `json:"notes_limit"`
	SubjectsLimit int      `json:"subjects_limit"`
	Features      []string `json:"features"`
	SortOrder     int      `json:"sort_order"`
}

// Entitlement is the current subscription and credit snapshot
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

// LimitCheck reports whether another subject or note may be created
type LimitCheck struct {
	Allowed bool `json:"allowed"`
	Current int  `json:"current"`
	Limit   int  `json:"limit"` // -1 = unlimited
}

// Streak is the study streak view
type Streak struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// PromoValidation is the outcome of validating a promo code
type PromoValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Checkout is a created payment checkout session
type Checkout struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// SessionStatus is a checkout session's payment state
type SessionStatus struct {
	SessionID string `json:"session_id"`
	Paid      bool   `json:"paid"`
	PlanType  string `json:"plan_type,omitempty"`
}
