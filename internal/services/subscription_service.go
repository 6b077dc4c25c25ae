package services

import (
	"context"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/metrics"
)

// operationCosts maps AI operation names to their fixed credit price
var operationCosts = map[string]int{
	tool.TypeQuiz:            2,
	tool.TypeFlashcards:      2,
	tool.TypeConceptMap:      3,
	tool.TypeSummary:         1,
	tool.TypeProcessNote:     1,
	tool.TypeAnalyzeDocument: 2,
}

// SubscriptionService implements subscription.Service
type SubscriptionService struct {
	users    user.Repository
	plans    plan.Service
	subjects subject.Repository
	notes    note.Repository
	logger   *logger.Logger
	now      func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(users user.Repository, plans plan.Service, subjects subject.Repository, notes note.Repository, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		users:    users,
		plans:    plans,
		subjects: subjects,
		notes:    notes,
		logger:   log,
		now:      time.Now,
	}
}

// GetUserSubscription returns the entitlement snapshot, lazily resetting the
// daily credit counter when a full window has elapsed.
func (s *SubscriptionService) GetUserSubscription(ctx context.Context, userID int64) (*subscription.Entitlement, error) {
	u, err := s.maybeReset(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := u.DailyCredits - u.CreditsUsedToday
	if remaining < 0 {
		remaining = 0
	}

	ent := &subscription.Entitlement{
		PlanType:            u.PlanType,
		DailyCredits:        u.DailyCredits,
		CreditsUsedToday:    u.CreditsUsedToday,
		CreditsRemaining:    remaining,
		SubscriptionPeriod:  u.SubscriptionPeriod,
		SubscriptionEndDate: u.SubscriptionEndDate,
	}
	if u.SubscriptionStatus != nil {
		ent.SubscriptionStatus = *u.SubscriptionStatus
		ent.IsActive = *u.SubscriptionStatus == user.SubscriptionActive &&
			(u.SubscriptionEndDate == nil || u.SubscriptionEndDate.After(s.now()))
	}

	return ent, nil
}

// CheckCredits reports whether the user has at least needed credits left.
// Reads fresh state every call; a stale answer here would let a burst of
// generations overdraw the allotment.
func (s *SubscriptionService) CheckCredits(ctx context.Context, userID int64, needed int) (bool, error) {
	ent, err := s.GetUserSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return ent.CreditsRemaining >= needed, nil
}

// ConsumeCredits spends amount credits in one conditional update. The
// repository reports whether enough credits remained at the moment of the
// write, so concurrent consumers cannot both pass a stale check.
func (s *SubscriptionService) ConsumeCredits(ctx context.Context, userID int64, amount int) error {
	u, err := s.maybeReset(ctx, userID)
	if err != nil {
		return err
	}

	applied, err := s.users.ConsumeCredits(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !applied {
		remaining := u.DailyCredits - u.CreditsUsedToday
		if remaining < 0 {
			remaining = 0
		}
		metrics.RecordCreditDenial()
		return errors.InsufficientCredits(amount, remaining)
	}

	return nil
}

// UpdateSubscriptionPlan applies a plan transition using catalog values. A
// failed payment records the plan with an inactive subscription and no dates.
func (s *SubscriptionService) UpdateSubscriptionPlan(ctx context.Context, userID int64, planType, period string, paymentSuccessful bool) error {
	p, err := s.plans.GetByType(ctx, planType)
	if err != nil {
		return err
	}

	now := s.now()
	change := user.PlanChange{
		PlanType:      p.PlanType,
		DailyCredits:  p.DailyCredits,
		NotesLimit:    p.NotesLimit,
		SubjectsLimit: p.SubjectsLimit,
		Period:        period,
		ChangedAt:     now,
	}

	if paymentSuccessful {
		change.Status = user.SubscriptionActive
		if planType != user.PlanTypeFree {
			start := now
			var end time.Time
			if period == user.PeriodYearly {
				end = now.AddDate(1, 0, 0)
			} else {
				end = now.AddDate(0, 1, 0)
			}
			change.StartDate = &start
			change.EndDate = &end
		}
	} else {
		change.Status = user.SubscriptionInactive
	}

	if err := s.users.ApplyPlan(ctx, userID, change); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"plan_type": planType,
		"period":    period,
		"paid":      paymentSuccessful,
	}).Info("Subscription plan updated")

	return nil
}

// CancelSubscription downgrades the user to the FREE plan
func (s *SubscriptionService) CancelSubscription(ctx context.Context, userID int64) error {
	return s.UpdateSubscriptionPlan(ctx, userID, user.PlanTypeFree, "", true)
}

// CheckPlanLimit reports whether the user may create another subject or note.
// Limits come from the catalog, not the denormalized user row, so a catalog
// change takes effect without touching user rows. The creation paths enforce
// the same limit again atomically at insert time.
func (s *SubscriptionService) CheckPlanLimit(ctx context.Context, userID int64, limitType string) (*subscription.LimitCheck, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.plans.GetByType(ctx, u.PlanType)
	if err != nil {
		return nil, err
	}

	var current, limit int
	switch limitType {
	case subscription.LimitSubjects:
		limit = p.SubjectsLimit
		current, err = s.subjects.CountByUser(ctx, userID)
	case subscription.LimitNotes:
		limit = p.NotesLimit
		current, err = s.notes.CountByUser(ctx, userID)
	default:
		return nil, errors.BadRequest("Unknown limit type: " + limitType)
	}
	if err != nil {
		return nil, err
	}

	return &subscription.LimitCheck{
		Allowed: limit == user.UnlimitedSentinel || current < limit,
		Current: current,
		Limit:   limit,
	}, nil
}

// OperationCost returns the fixed credit cost of a named AI operation
func (s *SubscriptionService) OperationCost(operation string) int {
	if cost, ok := operationCosts[operation]; ok {
		return cost
	}
	return 1
}

// maybeReset loads the user and performs the lazy daily credit reset when the
// window has elapsed. Returns the post-reset view of the user.
func (s *SubscriptionService) maybeReset(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Sub(u.LastCreditReset) >= subscription.CreditResetInterval {
		if err := s.users.ResetDailyCredits(ctx, userID, now); err != nil {
			return nil, err
		}
		u.CreditsUsedToday = 0
		u.LastCreditReset = now
	}

	return u, nil
}
