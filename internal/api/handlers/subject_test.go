package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/validator"
	"github.com/wisker-app/wisker/internal/services"
	"github.com/wisker-app/wisker/internal/testutil"
)

func newSubjectFixture(t *testing.T) (*SubjectHandler, *testutil.MockUserRepository, subject.Service) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedTestPlans(t, plans)
	subjects := testutil.NewMockSubjectRepository()
	notes := testutil.NewMockNoteRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	subs := services.NewSubscriptionService(users, services.NewPlanService(plans, log), subjects, notes, log)
	svc := services.NewSubjectService(subjects, subs, log)
	handler := NewSubjectHandler(svc, log, validator.New())
	return handler, users, svc
}

func seedFreeUser(t *testing.T, users *testutil.MockUserRepository) *user.User {
	t.Helper()
	u := &user.User{
		Email:         "a@example.com",
		PlanType:      user.PlanTypeFree,
		DailyCredits:  10,
		NotesLimit:    50,
		SubjectsLimit: 5,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func asUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSubjectHandler_Create(t *testing.T) {
	handler, users, _ := newSubjectFixture(t)
	u := seedFreeUser(t, users)

	body, _ := json.Marshal(map[string]string{"name": "Biology", "color": "#00ff00"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/subjects", bytes.NewReader(body)), u.ID)
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp struct {
		Data subject.Subject `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID == 0 || resp.Data.Name != "Biology" {
		t.Errorf("unexpected subject: %+v", resp.Data)
	}
	if resp.Data.UserID != u.ID {
		t.Errorf("UserID = %d, want %d", resp.Data.UserID, u.ID)
	}
}

func TestSubjectHandler_Create_PlanLimit(t *testing.T) {
	handler, users, svc := newSubjectFixture(t)
	u := seedFreeUser(t, users)

	// Fill the FREE plan's five subject slots
	for i := 0; i < 5; i++ {
		if err := svc.Create(context.Background(), &subject.Subject{UserID: u.ID, Name: fmt.Sprintf("Subject %d", i)}); err != nil {
			t.Fatalf("seed subject %d: %v", i, err)
		}
	}

	body, _ := json.Marshal(map[string]string{"name": "One Too Many"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/subjects", bytes.NewReader(body)), u.ID)
	rr := httptest.NewRecorder()

	handler.Create(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusForbidden, rr.Body.String())
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "PLAN_LIMIT_REACHED" {
		t.Errorf("error code = %q, want PLAN_LIMIT_REACHED", resp.Error.Code)
	}
}

func TestSubjectHandler_Get_Ownership(t *testing.T) {
	handler, users, svc := newSubjectFixture(t)
	owner := seedFreeUser(t, users)

	other := &user.User{Email: "b@example.com", PlanType: user.PlanTypeFree, SubjectsLimit: 5}
	if err := users.Create(context.Background(), other); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	s := &subject.Subject{UserID: owner.ID, Name: "Chemistry"}
	if err := svc.Create(context.Background(), s); err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	tests := []struct {
		name       string
		userID     int64
		wantStatus int
	}{
		{"owner sees the subject", owner.ID, http.StatusOK},
		{"other user gets not found", other.ID, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/subjects/%d", s.ID), nil)
			req = withURLParam(asUser(req, tt.userID), "id", fmt.Sprintf("%d", s.ID))
			rr := httptest.NewRecorder()

			handler.Get(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestSubjectHandler_Get_BadID(t *testing.T) {
	handler, users, _ := newSubjectFixture(t)
	u := seedFreeUser(t, users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subjects/abc", nil)
	req = withURLParam(asUser(req, u.ID), "id", "abc")
	rr := httptest.NewRecorder()

	handler.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
