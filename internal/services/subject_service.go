package services

import (
	"context"

	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// SubjectService implements subject.Service
type SubjectService struct {
	repo   subject.Repository
	subs   subscription.Service
	logger *logger.Logger
}

// NewSubjectService creates a new subject service
func NewSubjectService(repo subject.Repository, subs subscription.Service, log *logger.Logger) subject.Service {
	return &SubjectService{
		repo:   repo,
		subs:   subs,
		logger: log,
	}
}

// Create creates a subject. The plan limit is checked up front for a precise
// error, then enforced again inside the insert itself so concurrent creates
// cannot race past it.
func (s *SubjectService) Create(ctx context.Context, sub *subject.Subject) error {
	check, err := s.subs.CheckPlanLimit(ctx, sub.UserID, subscription.LimitSubjects)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return errors.PlanLimitReached(subscription.LimitSubjects, check.Current, check.Limit)
	}

	applied, err := s.repo.CreateWithinLimit(ctx, sub, check.Limit)
	if err != nil {
		return err
	}
	if !applied {
		return errors.PlanLimitReached(subscription.LimitSubjects, check.Limit, check.Limit)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    sub.UserID,
		"subject_id": sub.ID,
	}).Info("Subject created")

	return nil
}

// GetByID retrieves a subject, enforcing ownership
func (s *SubjectService) GetByID(ctx context.Context, userID, id int64) (*subject.Subject, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, errors.NotFound("Subject")
	}
	return sub, nil
}

// ListByUser retrieves the user's subjects
func (s *SubjectService) ListByUser(ctx context.Context, userID int64) ([]*subject.Subject, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update updates a subject, enforcing ownership
func (s *SubjectService) Update(ctx context.Context, userID int64, sub *subject.Subject) error {
	existing, err := s.GetByID(ctx, userID, sub.ID)
	if err != nil {
		return err
	}
	sub.UserID = existing.UserID
	return s.repo.Update(ctx, sub)
}

// Delete removes a subject and its notes, enforcing ownership
func (s *SubjectService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
