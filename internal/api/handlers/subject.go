package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// SubjectHandler handles study subject requests
type SubjectHandler struct {
	subjects  subject.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjects subject.Service, log *logger.Logger, val *validator.Validator) *SubjectHandler {
	return &SubjectHandler{
		subjects:  subjects,
		logger:    log,
		validator: val,
	}
}

// Create creates a subject under the owner's plan limit
// @Summary Create subject
// @Description Create a study subject; fails when the plan limit is reached
// @Tags Subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject details"
// @Success 201 {object} subject.Subject "Created subject"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Security BearerAuth
// @Router /subjects [post]
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	s := &subject.Subject{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := h.subjects.Create(r.Context(), s); err != nil {
		writeServiceError(w, err, "Failed to create subject")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, s)
}

// List returns the authenticated user's subjects
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {array} subject.Subject "Subjects"
// @Security BearerAuth
// @Router /subjects [get]
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	subjects, err := h.subjects.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load subjects")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, subjects)
}

// Get returns one owned subject
// @Summary Get subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} subject.Subject "Subject"
// @Failure 404 {object} utils.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	s, err := h.subjects.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err, "Failed to load subject")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, s)
}

// Update updates an owned subject
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateSubjectRequest true "Subject details"
// @Success 200 {object} subject.Subject "Updated subject"
// @Failure 404 {object} utils.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	s := &subject.Subject{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := h.subjects.Update(r.Context(), userID, s); err != nil {
		writeServiceError(w, err, "Failed to update subject")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, s)
}

// Delete removes an owned subject and its notes
// @Summary Delete subject
// @Description Delete a subject; its notes and their tools cascade
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} utils.SuccessResponse "Subject deleted"
// @Failure 404 {object} utils.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.subjects.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "Failed to delete subject")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Subject deleted", nil)
}
