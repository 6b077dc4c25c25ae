package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wisker-app/wisker/internal/api/dto"
	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/pkg/validator"
)

// ToolHandler handles learning tool requests
type ToolHandler struct {
	tools     tool.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewToolHandler creates a new tool handler
func NewToolHandler(tools tool.Service, log *logger.Logger, val *validator.Validator) *ToolHandler {
	return &ToolHandler{
		tools:     tools,
		logger:    log,
		validator: val,
	}
}

// Generate produces a learning tool from an owned note, spending credits
// @Summary Generate learning tool
// @Description Generate a quiz, flashcards, concept map or summary from a note
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body dto.GenerateToolRequest true "Note and tool type"
// @Success 201 {object} tool.LearningTool "Generated tool"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 402 {object} utils.ErrorResponse "Insufficient credits"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /tools/generate [post]
func (h *ToolHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	var req dto.GenerateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	generated, err := h.tools.Generate(r.Context(), userID, req.NoteID, req.ToolType)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"user_id":   userID,
			"note_id":   req.NoteID,
			"tool_type": req.ToolType,
		}).ErrorWithErr(err, "Tool generation failed")
		writeServiceError(w, err, "Failed to generate tool")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, generated)
}

// ListByNote returns the tools generated from an owned note
// @Summary List tools for a note
// @Tags Tools
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {array} tool.LearningTool "Tools"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{id}/tools [get]
func (h *ToolHandler) ListByNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	noteID, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	tools, err := h.tools.ListByNote(r.Context(), userID, noteID)
	if err != nil {
		writeServiceError(w, err, "Failed to load tools")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, tools)
}

// List returns all the authenticated user's tools
// @Summary List tools
// @Tags Tools
// @Produce json
// @Success 200 {array} tool.LearningTool "Tools"
// @Security BearerAuth
// @Router /tools [get]
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	tools, err := h.tools.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load tools")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, tools)
}

// Get returns one owned tool
// @Summary Get tool
// @Tags Tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} tool.LearningTool "Tool"
// @Failure 404 {object} utils.ErrorResponse "Tool not found"
// @Security BearerAuth
// @Router /tools/{id} [get]
func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	t, err := h.tools.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err, "Failed to load tool")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}

// Delete removes an owned tool
// @Summary Delete tool
// @Tags Tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} utils.SuccessResponse "Tool deleted"
// @Failure 404 {object} utils.ErrorResponse "Tool not found"
// @Security BearerAuth
// @Router /tools/{id} [delete]
func (h *ToolHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.tools.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err, "Failed to delete tool")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Tool deleted", nil)
}
