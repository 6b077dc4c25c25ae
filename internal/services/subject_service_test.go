package services

import (
	"context"
	"testing"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

type contentFixture struct {
	subjectSvc subject.Service
	noteSvc    note.Service
	subjects   *testutil.MockSubjectRepository
	notes      *testutil.MockNoteRepository
	users      *testutil.MockUserRepository
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedPlans(t, plans)
	subjects := testutil.NewMockSubjectRepository()
	notes := testutil.NewMockNoteRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	subsSvc := NewSubscriptionService(users, NewPlanService(plans, log), subjects, notes, log)
	return &contentFixture{
		subjectSvc: NewSubjectService(subjects, subsSvc, log),
		noteSvc:    NewNoteService(notes, subjects, subsSvc, log),
		subjects:   subjects,
		notes:      notes,
		users:      users,
	}
}

func TestSubjectService_Create_EnforcesPlanLimit(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	// FREE allows 5 subjects
	for i := 0; i < 5; i++ {
		if err := f.subjectSvc.Create(ctx, &subject.Subject{UserID: u.ID, Name: "Subject"}); err != nil {
			t.Fatalf("Create() #%d error = %v", i+1, err)
		}
	}

	err := f.subjectSvc.Create(ctx, &subject.Subject{UserID: u.ID, Name: "One too many"})
	if !errors.IsCode(err, errors.ErrCodePlanLimitReached) {
		t.Errorf("Create() over limit error = %v, want PLAN_LIMIT_REACHED", err)
	}
}

func TestSubjectService_Create_UnlimitedPlan(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypePremium, DailyCredits: 200})

	for i := 0; i < 20; i++ {
		if err := f.subjectSvc.Create(ctx, &subject.Subject{UserID: u.ID, Name: "Subject"}); err != nil {
			t.Fatalf("Create() #%d on unlimited plan error = %v", i+1, err)
		}
	}
}

func TestSubjectService_Ownership(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	owner := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	other := seedUser(t, f.users, &user.User{Email: "b@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	s := &subject.Subject{UserID: owner.ID, Name: "Chemistry"}
	if err := f.subjectSvc.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := f.subjectSvc.GetByID(ctx, other.ID, s.ID); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetByID() by non-owner error = %v, want NOT_FOUND", err)
	}
	if err := f.subjectSvc.Delete(ctx, other.ID, s.ID); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete() by non-owner error = %v, want NOT_FOUND", err)
	}
}

func TestNoteService_Create_CountsAcrossSubjects(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	s1 := &subject.Subject{UserID: u.ID, Name: "One"}
	s2 := &subject.Subject{UserID: u.ID, Name: "Two"}
	for _, s := range []*subject.Subject{s1, s2} {
		if err := f.subjectSvc.Create(ctx, s); err != nil {
			t.Fatalf("seed subject: %v", err)
		}
	}

	// FREE allows 50 notes in total, regardless of subject
	for i := 0; i < 50; i++ {
		target := s1
		if i%2 == 1 {
			target = s2
		}
		if err := f.noteSvc.Create(ctx, &note.Note{SubjectID: target.ID, UserID: u.ID, Title: "n"}); err != nil {
			t.Fatalf("Create() #%d error = %v", i+1, err)
		}
	}

	err := f.noteSvc.Create(ctx, &note.Note{SubjectID: s1.ID, UserID: u.ID, Title: "overflow"})
	if !errors.IsCode(err, errors.ErrCodePlanLimitReached) {
		t.Errorf("Create() over limit error = %v, want PLAN_LIMIT_REACHED", err)
	}
}

func TestNoteService_Create_ForeignSubject(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	owner := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})
	other := seedUser(t, f.users, &user.User{Email: "b@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	s := &subject.Subject{UserID: owner.ID, Name: "Private"}
	if err := f.subjectSvc.Create(ctx, s); err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	err := f.noteSvc.Create(ctx, &note.Note{SubjectID: s.ID, UserID: other.ID, Title: "intrusion"})
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Create() in foreign subject error = %v, want NOT_FOUND", err)
	}
}

func TestNoteService_AttachFile(t *testing.T) {
	f := newContentFixture(t)
	ctx := context.Background()
	u := seedUser(t, f.users, &user.User{Email: "a@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10})

	s := &subject.Subject{UserID: u.ID, Name: "Physics"}
	if err := f.subjectSvc.Create(ctx, s); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	n := &note.Note{SubjectID: s.ID, UserID: u.ID, Title: "Optics"}
	if err := f.noteSvc.Create(ctx, n); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	if err := f.noteSvc.AttachFile(ctx, u.ID, n.ID, "https://bucket.example.test/optics.pdf", "application/pdf"); err != nil {
		t.Fatalf("AttachFile() error = %v", err)
	}

	stored, err := f.noteSvc.GetByID(ctx, u.ID, n.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.FileURL == nil || *stored.FileURL != "https://bucket.example.test/optics.pdf" {
		t.Errorf("FileURL = %v", stored.FileURL)
	}
	if stored.FileType == nil || *stored.FileType != "application/pdf" {
		t.Errorf("FileType = %v", stored.FileType)
	}
}
