package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/utils"
)

// idParam parses a numeric URL parameter
func idParam(r *http.Request, name string) (int64, *errors.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

// writeServiceError writes err as its AppError when it carries one, 500 otherwise
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := errors.GetAppError(err); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}

// toUserDTO converts a user to its public view
func toUserDTO(u *user.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		Role:            u.Role,
		PlanType:        u.PlanType,
		IsEarlyUser:     u.IsEarlyUser,
		EarlyUserNumber: u.EarlyUserNumber,
		CurrentStreak:   u.CurrentStreak,
		LongestStreak:   u.LongestStreak,
		CreatedAt:       u.CreatedAt,
		LastActivity:    u.LastActivityDate,
	}
}
