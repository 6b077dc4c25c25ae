package services

import (
	"context"
	"testing"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/testutil"
)

type toolFixture struct {
	svc   *ToolService
	users *testutil.MockUserRepository
	tools *testutil.MockToolRepository
	ai    *testutil.MockGenerator
	note  *note.Note
	owner *user.User
}

func newToolFixture(t *testing.T) *toolFixture {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedPlans(t, plans)
	subjects := testutil.NewMockSubjectRepository()
	notes := testutil.NewMockNoteRepository()
	tools := testutil.NewMockToolRepository()
	ai := &testutil.MockGenerator{Content: `{"questions":[]}`}
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	planSvc := NewPlanService(plans, log)
	subsSvc := NewSubscriptionService(users, planSvc, subjects, notes, log)
	subsSvc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	noteSvc := NewNoteService(notes, subjects, subsSvc, log)
	streakSvc := NewStreakService(users, log)
	svc := NewToolService(tools, noteSvc, subsSvc, streakSvc, ai, log).(*ToolService)

	ctx := context.Background()
	owner := seedUser(t, users, &user.User{
		Email: "a@example.com", PlanType: user.PlanTypeFree,
		DailyCredits: 10, LastCreditReset: time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC),
	})

	sub := &subject.Subject{UserID: owner.ID, Name: "Biology"}
	if _, err := subjects.CreateWithinLimit(ctx, sub, -1); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	n := &note.Note{SubjectID: sub.ID, UserID: owner.ID, Title: "Cells", Content: "Mitochondria..."}
	if _, err := notes.CreateWithinLimit(ctx, n, -1); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	return &toolFixture{svc: svc, users: users, tools: tools, ai: ai, note: n, owner: owner}
}

func TestToolService_Generate(t *testing.T) {
	f := newToolFixture(t)
	ctx := context.Background()

	got, err := f.svc.Generate(ctx, f.owner.ID, f.note.ID, "quiz")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.ID == 0 || got.Content != `{"questions":[]}` {
		t.Errorf("tool = %+v", got)
	}

	// quiz costs 2 credits
	if used := f.users.Users[f.owner.ID].CreditsUsedToday; used != 2 {
		t.Errorf("CreditsUsedToday = %d, want 2", used)
	}
	// generation records streak activity
	if streak := f.users.Users[f.owner.ID].CurrentStreak; streak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak)
	}
}

func TestToolService_Generate_UnknownType(t *testing.T) {
	f := newToolFixture(t)

	_, err := f.svc.Generate(context.Background(), f.owner.ID, f.note.ID, "mind-palace")
	if !errors.IsCode(err, errors.ErrCodeBadRequest) {
		t.Errorf("Generate() error = %v, want BAD_REQUEST", err)
	}
	if f.ai.Calls != 0 {
		t.Errorf("generator called %d times for unknown type", f.ai.Calls)
	}
}

func TestToolService_Generate_InsufficientCredits(t *testing.T) {
	f := newToolFixture(t)
	f.users.Users[f.owner.ID].CreditsUsedToday = 9 // 1 left, quiz needs 2

	_, err := f.svc.Generate(context.Background(), f.owner.ID, f.note.ID, "quiz")
	if !errors.IsCode(err, errors.ErrCodeInsufficientCredits) {
		t.Errorf("Generate() error = %v, want INSUFFICIENT_CREDITS", err)
	}
	if f.ai.Calls != 0 {
		t.Errorf("generator called %d times without credits", f.ai.Calls)
	}
	if len(f.tools.Tools) != 0 {
		t.Errorf("tool persisted despite credit denial")
	}
}

func TestToolService_Generate_OtherUsersNote(t *testing.T) {
	f := newToolFixture(t)
	other := seedUser(t, f.users, &user.User{
		Email: "b@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10,
		LastCreditReset: time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC),
	})

	_, err := f.svc.Generate(context.Background(), other.ID, f.note.ID, "summary")
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Generate() on foreign note error = %v, want NOT_FOUND", err)
	}
	if used := f.users.Users[other.ID].CreditsUsedToday; used != 0 {
		t.Errorf("credits consumed for denied generation: %d", used)
	}
}

func TestToolService_OwnershipOnReads(t *testing.T) {
	f := newToolFixture(t)
	ctx := context.Background()

	generated, err := f.svc.Generate(ctx, f.owner.ID, f.note.ID, "summary")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	other := seedUser(t, f.users, &user.User{
		Email: "b@example.com", PlanType: user.PlanTypeFree, DailyCredits: 10,
	})

	if _, err := f.svc.GetByID(ctx, other.ID, generated.ID); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetByID() by non-owner error = %v, want NOT_FOUND", err)
	}
	if err := f.svc.Delete(ctx, other.ID, generated.ID); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete() by non-owner error = %v, want NOT_FOUND", err)
	}
	if _, err := f.svc.GetByID(ctx, f.owner.ID, generated.ID); err != nil {
		t.Errorf("GetByID() by owner error = %v", err)
	}
}
