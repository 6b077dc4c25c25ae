package services

import (
	"context"
	"sync"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// PlanService implements plan.Service. The catalog is read on nearly every
// request (signups, limit checks, checkout pricing), so reads are served from
// an in-memory snapshot that catalog writes invalidate.
type PlanService struct {
	repo   plan.Repository
	logger *logger.Logger

	mu     sync.RWMutex
	byType map[string]*plan.Plan
}

// NewPlanService creates a new plan catalog service
func NewPlanService(repo plan.Repository, log *logger.Logger) plan.Service {
	return &PlanService{
		repo:   repo,
		logger: log,
	}
}

// GetByType retrieves a plan by type, from cache when warm
func (s *PlanService) GetByType(ctx context.Context, planType string) (*plan.Plan, error) {
	s.mu.RLock()
	if s.byType != nil {
		if p, ok := s.byType[planType]; ok {
			s.mu.RUnlock()
			return p, nil
		}
	}
	s.mu.RUnlock()

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	p, ok := s.byType[planType]
	s.mu.RUnlock()
	if !ok {
		// Fall through to the repository for its NotFound error
		return s.repo.GetByType(ctx, planType)
	}
	return p, nil
}

// List retrieves plans ordered by sort_order. Always hits the repository:
// listings are admin and pricing-page traffic, not hot-path reads.
func (s *PlanService) List(ctx context.Context, activeOnly bool) ([]*plan.Plan, error) {
	return s.repo.List(ctx, activeOnly)
}

// Create creates a catalog entry and invalidates the cache
func (s *PlanService) Create(ctx context.Context, p *plan.Plan) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	s.logger.WithFields(map[string]interface{}{
		"plan_type": p.PlanType,
	}).Info("Plan created")
	return nil
}

// Update updates a catalog entry and invalidates the cache
func (s *PlanService) Update(ctx context.Context, p *plan.Plan) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	s.logger.WithFields(map[string]interface{}{
		"plan_type": p.PlanType,
	}).Info("Plan updated")
	return nil
}

// Delete removes a catalog entry and invalidates the cache
func (s *PlanService) Delete(ctx context.Context, planType string) error {
	if err := s.repo.Delete(ctx, planType); err != nil {
		return err
	}
	s.invalidate()
	s.logger.WithFields(map[string]interface{}{
		"plan_type": planType,
	}).Info("Plan deleted")
	return nil
}

func (s *PlanService) refresh(ctx context.Context) error {
	plans, err := s.repo.List(ctx, false)
	if err != nil {
		return err
	}

	byType := make(map[string]*plan.Plan, len(plans))
	for _, p := range plans {
		byType[p.PlanType] = p
	}

	s.mu.Lock()
	s.byType = byType
	s.mu.Unlock()
	return nil
}

func (s *PlanService) invalidate() {
	s.mu.Lock()
	s.byType = nil
	s.mu.Unlock()
}
