package handlers

import (
	"net/http"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
)

// UserHandler handles admin user management requests
type UserHandler struct {
	users  user.Service
	logger *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users user.Service, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: log,
	}
}

// AdminList returns users with pagination
// @Summary List users (admin)
// @Description Page through registered users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.PaginatedResponse "Users"
// @Failure 403 {object} utils.ErrorResponse "Admin access required"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePagination(r)

	users, total, err := h.users.List(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err, "Failed to load users")
		return
	}

	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}
