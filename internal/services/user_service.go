package services

import (
	"context"
	"strings"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// earlyUserLimit caps how many signups get the early-user badge
const earlyUserLimit = 500

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	plans  plan.Service
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, plans plan.Service, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		plans:  plans,
		logger: log,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

// Create creates a new user on the FREE plan. The credit allotment and
// content limits come from the plan catalog, not a hardcoded table, so a
// catalog change applies to new signups immediately.
func (s *UserService) Create(ctx context.Context, email, username, passwordHash string) (*user.User, error) {
	free, err := s.plans.GetByType(ctx, user.PlanTypeFree)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load FREE plan from catalog")
		return nil, err
	}

	u := &user.User{
		Email:         strings.ToLower(email),
		Username:      username,
		PasswordHash:  passwordHash,
		Role:          user.RoleUser,
		PlanType:      user.PlanTypeFree,
		DailyCredits:  free.DailyCredits,
		NotesLimit:    free.NotesLimit,
		SubjectsLimit: free.SubjectsLimit,
	}

	count, err := s.repo.Count(ctx)
	if err == nil && count < earlyUserLimit {
		n := int(count) + 1
		u.IsEarlyUser = true
		u.EarlyUserNumber = &n
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User created")

	return u, nil
}

// Update updates a user
func (s *UserService) Update(ctx context.Context, u *user.User) error {
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return err
	}
	return nil
}

// Delete removes the account. Subjects, notes and learning tools cascade at
// the database level.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete user")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": id,
	}).Info("User deleted")

	return nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
