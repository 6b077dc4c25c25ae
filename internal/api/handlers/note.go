package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// NoteHandler handles study note requests
type NoteHandler struct {
	notes     note.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes note.Service, log *logger.Logger, val *validator.Validator) *NoteHandler {
	return &NoteHandler{
		notes:     notes,
		logger:    log,
		validator: val,
	}
}

// Create creates a note under the owner's plan limit
// @Summary Create note
// @Description Create a note in an owned subject; fails when the plan limit is reached
// @Tags Notes
// @Accept json
// @Produce json
// @Param request body dto.CreateNoteRequest true "Note details"
// @Success 201 {object} note.Note "Created note"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Failure 404 {object} utils.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /notes [post]
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	n := &note.Note{
		SubjectID: req.SubjectID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := h.notes.Create(r.Context(), n); err != nil {
		writeServiceError(w, err, "Failed to create note")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, n)
}

// ListBySubject returns the notes of an owned subject
// @Summary List notes
// @Tags Notes
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {array} note.Note "Notes"
// @Failure 404 {object} utils.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /subjects/{id}/notes [get]
func (h *NoteHandler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	subjectID, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	notes, err := h.notes.ListBySubject(r.Context(), userID, subjectID)
	if err != nil {
		writeServiceError(w, err, "Failed to load notes")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, notes)
}

// Get returns one owned note
// @Summary Get note
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} note.Note "Note"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	n, err := h.notes.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err, "Failed to load note")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, n)
}

// Update updates an owned note
// @Summary Update note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Note details"
// @Success 200 {object} note.Note "Updated note"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req dto.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	n := &note.Note{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.notes.Update(r.Context(), userID, n); err != nil {
		writeServiceError(w, err, "Failed to update note")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, n)
}

// Delete removes an owned note and its generated tools
// @Summary Delete note
// @Description Delete a note; its learning tools cascade
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} utils.SuccessResponse "Note deleted"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notes.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "Failed to delete note")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Note deleted", nil)
}
