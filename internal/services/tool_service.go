package services

import (
	"context"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/metrics"
	"github.com/wisker-app/wisker/internal/providers"
)

// ToolService implements tool.Service
type ToolService struct {
	repo    tool.Repository
	notes   note.Service
	subs    subscription.Service
	streaks user.StreakService
	ai      providers.Generator
	logger  *logger.Logger
}

// NewToolService creates a new learning tool service
func NewToolService(repo tool.Repository, notes note.Service, subs subscription.Service, streaks user.StreakService, ai providers.Generator, log *logger.Logger) tool.Service {
	return &ToolService{
		repo:    repo,
		notes:   notes,
		subs:    subs,
		streaks: streaks,
		ai:      ai,
		logger:  log,
	}
}

// Generate produces a learning tool from an owned note. Credits are consumed
// for the operation before the model is called; a failed generation after the
// spend is logged but not refunded, matching how the gateway treats us.
func (s *ToolService) Generate(ctx context.Context, userID, noteID int64, toolType string) (*tool.LearningTool, error) {
	if !tool.KnownType(toolType) {
		return nil, errors.BadRequest("Unknown tool type: " + toolType)
	}
	if s.ai == nil {
		return nil, errors.New(errors.ErrCodeInternal, "AI generation is not configured", 500)
	}

	n, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	cost := s.subs.OperationCost(toolType)
	if err := s.subs.ConsumeCredits(ctx, userID, cost); err != nil {
		return nil, err
	}
	metrics.RecordCreditsConsumed(toolType, cost)

	start := time.Now()
	content, err := s.ai.Generate(ctx, toolType, n.Title, n.Content)
	if err != nil {
		metrics.RecordGeneration(toolType, "error", time.Since(start))
		s.logger.WithFields(map[string]interface{}{
			"user_id":   userID,
			"note_id":   noteID,
			"tool_type": toolType,
		}).ErrorWithErr(err, "Generation failed after credit spend")
		return nil, err
	}
	metrics.RecordGeneration(toolType, "ok", time.Since(start))

	t := &tool.LearningTool{
		NoteID:   noteID,
		UserID:   userID,
		ToolType: toolType,
		Content:  content,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if _, err := s.streaks.RecordActivity(ctx, userID); err != nil {
		// Streak bookkeeping must not fail the generation
		s.logger.ErrorWithErr(err, "Failed to record streak activity")
	}

	return t, nil
}

// GetByID retrieves a tool, enforcing ownership
func (s *ToolService) GetByID(ctx context.Context, userID, id int64) (*tool.LearningTool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, errors.NotFound("Learning tool")
	}
	return t, nil
}

// ListByNote retrieves the tools of an owned note
func (s *ToolService) ListByNote(ctx context.Context, userID, noteID int64) ([]*tool.LearningTool, error) {
	if _, err := s.notes.GetByID(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.repo.ListByNote(ctx, noteID)
}

// ListByUser retrieves the user's tools
func (s *ToolService) ListByUser(ctx context.Context, userID int64) ([]*tool.LearningTool, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes a tool, enforcing ownership
func (s *ToolService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
