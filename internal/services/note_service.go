package services

import (
	"context"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// NoteService implements note.Service
type NoteService struct {
	repo     note.Repository
	subjects subject.Repository
	subs     subscription.Service
	logger   *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo note.Repository, subjects subject.Repository, subs subscription.Service, log *logger.Logger) note.Service {
	return &NoteService{
		repo:     repo,
		subjects: subjects,
		subs:     subs,
		logger:   log,
	}
}

// Create creates a note under one of the user's subjects. The note limit
// counts across all subjects and is enforced atomically at insert time.
func (s *NoteService) Create(ctx context.Context, n *note.Note) error {
	sub, err := s.subjects.GetByID(ctx, n.SubjectID)
	if err != nil {
		return err
	}
	if sub.UserID != n.UserID {
		return errors.NotFound("Subject")
	}

	check, err := s.subs.CheckPlanLimit(ctx, n.UserID, subscription.LimitNotes)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return errors.PlanLimitReached(subscription.LimitNotes, check.Current, check.Limit)
	}

	applied, err := s.repo.CreateWithinLimit(ctx, n, check.Limit)
	if err != nil {
		return err
	}
	if !applied {
		return errors.PlanLimitReached(subscription.LimitNotes, check.Limit, check.Limit)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": n.UserID,
		"note_id": n.ID,
	}).Info("Note created")

	return nil
}

// GetByID retrieves a note, enforcing ownership
func (s *NoteService) GetByID(ctx context.Context, userID, id int64) (*note.Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, errors.NotFound("Note")
	}
	return n, nil
}

// ListBySubject retrieves the notes of an owned subject
func (s *NoteService) ListBySubject(ctx context.Context, userID, subjectID int64) ([]*note.Note, error) {
	sub, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, errors.NotFound("Subject")
	}
	return s.repo.ListBySubject(ctx, subjectID)
}

// Update updates a note, enforcing ownership
func (s *NoteService) Update(ctx context.Context, userID int64, n *note.Note) error {
	existing, err := s.GetByID(ctx, userID, n.ID)
	if err != nil {
		return err
	}
	n.UserID = existing.UserID
	n.SubjectID = existing.SubjectID
	return s.repo.Update(ctx, n)
}

// Delete removes a note and its learning tools, enforcing ownership
func (s *NoteService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AttachFile records an uploaded file URL on an owned note
func (s *NoteService) AttachFile(ctx context.Context, userID, id int64, fileURL, fileType string) error {
	n, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	n.FileURL = &fileURL
	n.FileType = &fileType
	return s.repo.Update(ctx, n)
}
