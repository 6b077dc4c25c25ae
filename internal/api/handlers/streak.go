package handlers

import (
	"net/http"

	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
)

// StreakHandler handles study streak requests
type StreakHandler struct {
	streaks user.StreakService
	logger  *logger.Logger
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streaks user.StreakService, log *logger.Logger) *StreakHandler {
	return &StreakHandler{
		streaks: streaks,
		logger:  log,
	}
}

// Get returns the authenticated user's streak, zeroing a lapsed one
// @Summary Current streak
// @Description Get the current and longest study streaks
// @Tags Streak
// @Produce json
// @Success 200 {object} user.Streak "Streak data"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /streak [get]
func (h *StreakHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	streak, err := h.streaks.GetStreakData(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load streak")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, streak)
}

// Record marks study activity for today and extends or resets the streak
// @Summary Record activity
// @Description Record a study action for streak tracking
// @Tags Streak
// @Produce json
// @Success 200 {object} user.Streak "Updated streak"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /streak/activity [post]
func (h *StreakHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	streak, err := h.streaks.RecordActivity(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to record activity")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, streak)
}
