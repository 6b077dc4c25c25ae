package handlers

import (
	"io"
	"net/http"

	"github.com/wisker-app/wisker/internal/api/middleware"
	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
	"github.com/wisker-app/wisker/internal/pkg/utils"
	"github.com/wisker-app/wisker/internal/storage/s3"
)

// UploadHandler handles note file uploads
type UploadHandler struct {
	storage  *s3.Storage
	notes    note.Service
	maxBytes int64
	logger   *logger.Logger
}

// NewUploadHandler creates a new upload handler. storage may be nil when
// object storage is not configured; uploads then fail with 503.
func NewUploadHandler(storage *s3.Storage, notes note.Service, maxBytes int64, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		storage:  storage,
		notes:    notes,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// Upload attaches a PDF or image to an owned note
// @Summary Upload note file
// @Description Attach a PDF or image (multipart field "file") to a note
// @Tags Notes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Note ID"
// @Param file formData file true "PDF or image file"
// @Success 200 {object} note.Note "Note with attached file"
// @Failure 400 {object} utils.ErrorResponse "Missing file or unsupported type"
// @Failure 404 {object} utils.ErrorResponse "Note not found"
// @Failure 413 {object} utils.ErrorResponse "File too large"
// @Security BearerAuth
// @Router /notes/{id}/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
		return
	}

	if h.storage == nil {
		utils.WriteError(w, errors.New("SERVICE_UNAVAILABLE", "File storage is not configured", http.StatusServiceUnavailable))
		return
	}

	noteID, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Missing or oversized file upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Failed to read uploaded file"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !s3.AllowedContentType(contentType) {
		utils.WriteError(w, errors.BadRequest("Unsupported file type, expected PDF or image"))
		return
	}

	// Verify ownership before paying for the upload
	if _, err := h.notes.GetByID(r.Context(), userID, noteID); err != nil {
		writeServiceError(w, err, "Failed to load note")
		return
	}

	fileURL, err := h.storage.Upload(r.Context(), userID, header.Filename, contentType, data)
	if err != nil {
		h.logger.ErrorWithErr(err, "File upload failed")
		writeServiceError(w, err, "Failed to store file")
		return
	}

	if err := h.notes.AttachFile(r.Context(), userID, noteID, fileURL, contentType); err != nil {
		writeServiceError(w, err, "Failed to attach file")
		return
	}

	n, err := h.notes.GetByID(r.Context(), userID, noteID)
	if err != nil {
		writeServiceError(w, err, "Failed to load note")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":      userID,
		"note_id":      noteID,
		"content_type": contentType,
		"size_bytes":   len(data),
	}).Info("File attached to note")

	utils.WriteSuccess(w, http.StatusOK, n)
}
