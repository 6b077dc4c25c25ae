package handlers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/auth"
	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   h.config.IsProduction(),
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})
	}
}

// Register handles user registration
// @Summary User registration
// @Description Register a new account on the FREE plan
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.config.Auth.BCryptCost)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to hash password")
		utils.WriteError(w, errors.Internal("Failed to create user", err))
		return
	}

	newUser, err := h.userService.Create(r.Context(), req.Email, req.Username, string(hash))
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeConflict) {
			h.logger.WithFields(map[string]interface{}{
				"email": req.Email,
			}).Warn("Registration attempt with existing email")
			utils.WriteError(w, errors.Conflict("Email already registered"))
			return
		}
		h.logger.ErrorWithErr(err, "Failed to create user")
		writeServiceError(w, err, "Failed to create user")
		return
	}

	tokens, err := auth.MintTokens(
		newUser.ID,
		newUser.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setAuthCookies(w, tokens)

	h.logger.WithFields(map[string]interface{}{
		"user_id":    newUser.ID,
		"early_user": newUser.IsEarlyUser,
	}).Info("User registered")

	utils.WriteSuccess(w, http.StatusCreated, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         toUserDTO(newUser),
	})
}

// Login handles user login
// @Summary User login
// @Description Authenticate with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	u, err := h.userService.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Login attempt for unknown email")
		utils.WriteError(w, errors.Unauthorized("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WithFields(map[string]interface{}{
			"user_id": u.ID,
		}).Warn("Login attempt with wrong password")
		utils.WriteError(w, errors.Unauthorized("Invalid credentials"))
		return
	}

	tokens, err := auth.MintTokens(
		u.ID,
		u.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setAuthCookies(w, tokens)

	h.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User logged in")

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         toUserDTO(u),
	})
}

// Refresh handles token refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token (falls back to the refreshToken cookie)"
// @Success 200 {object} dto.AuthResponse "New token pair"
// @Failure 401 {object} utils.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	// Body is optional; the cookie is the fallback
	_ = json.NewDecoder(r.Body).Decode(&req)

	tokenStr := req.RefreshToken
	if tokenStr == "" {
		if cookie, err := r.Cookie("refreshToken"); err == nil {
			tokenStr = cookie.Value
		}
	}
	if tokenStr == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := auth.ParseClaims(tokenStr, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired refresh token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Account no longer exists"))
		return
	}

	tokens, err := auth.MintTokens(
		u.ID,
		u.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setAuthCookies(w, tokens)

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         toUserDTO(u),
	})
}

// Logout clears the auth cookies
// @Summary Logout
// @Description Clear the authentication cookies
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "User profile"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load user")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toUserDTO(u))
}

// DeleteAccount removes the authenticated user's account and all owned content
// @Summary Delete account
// @Description Permanently delete the account with its subjects, notes and tools
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Account deleted"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [delete]
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		h.logger.ErrorWithErr(err, "Failed to delete account")
		writeServiceError(w, err, "Failed to delete account")
		return
	}

	h.clearAuthCookies(w)

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("Account deleted")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Account deleted", nil)
}
