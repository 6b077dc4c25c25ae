package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/validator"
	"github.com/wisker-app/wisker/internal/services"
	"github.com/wisker-app/wisker/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			BCryptCost:         bcrypt.MinCost,
		},
	}
}

func newAuthFixture(t *testing.T) (*AuthHandler, *testutil.MockUserRepository) {
	t.Helper()
	users := testutil.NewMockUserRepository()
	plans := testutil.NewMockPlanRepository()
	seedTestPlans(t, plans)
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	userService := services.NewUserService(users, services.NewPlanService(plans, log), log)
	handler := NewAuthHandler(userService, testConfig(), log, validator.New())
	return handler, users
}

func TestAuthHandler_Register(t *testing.T) {
	handler, _ := newAuthFixture(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "Student@Example.com",
		"password": "correct horse",
		"username": "student",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
			User         struct {
				Email    string `json:"email"`
				PlanType string `json:"planType"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
		t.Error("expected both tokens in the response")
	}
	if resp.Data.User.Email != "student@example.com" {
		t.Errorf("email = %q, want lowercased", resp.Data.User.Email)
	}
	if resp.Data.User.PlanType != "FREE" {
		t.Errorf("planType = %q, want FREE", resp.Data.User.PlanType)
	}

	var sawAccessCookie bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "accessToken" && c.HttpOnly {
			sawAccessCookie = true
		}
	}
	if !sawAccessCookie {
		t.Error("expected an HttpOnly accessToken cookie")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, _ := newAuthFixture(t)

	body, _ := json.Marshal(map[string]string{"email": "a@example.com", "password": "correct horse"})
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.Register(rr, req)
		if rr.Code != want {
			t.Fatalf("attempt %d: status = %d, want %d", i+1, rr.Code, want)
		}
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	handler, _ := newAuthFixture(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"short password", map[string]string{"email": "a@example.com", "password": "short"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "correct horse"}},
		{"missing password", map[string]string{"email": "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.Register(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	handler, _ := newAuthFixture(t)

	register, _ := json.Marshal(map[string]string{"email": "a@example.com", "password": "correct horse"})
	rr := httptest.NewRecorder()
	handler.Register(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(register)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", rr.Code)
	}

	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{"valid credentials", "a@example.com", "correct horse", http.StatusOK},
		{"wrong password", "a@example.com", "battery staple", http.StatusUnauthorized},
		{"unknown email", "b@example.com", "correct horse", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"email": tt.email, "password": tt.password})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.Login(rr, req)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	handler, _ := newAuthFixture(t)

	register, _ := json.Marshal(map[string]string{"email": "a@example.com", "password": "correct horse"})
	rr := httptest.NewRecorder()
	handler.Register(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(register)))

	var resp struct {
		Data struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"refreshToken": resp.Data.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	rr = httptest.NewRecorder()
	handler.Refresh(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("refresh: status = %d: %s", rr.Code, rr.Body.String())
	}

	// Garbage token is rejected
	body, _ = json.Marshal(map[string]string{"refreshToken": "not-a-token"})
	rr = httptest.NewRecorder()
	handler.Refresh(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body)))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
