package dto

// CreateSubjectRequest creates a study subject
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateSubjectRequest updates a study subject
type UpdateSubjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// CreateNoteRequest creates a note within a subject
type CreateNoteRequest struct {
	SubjectID int64  `json:"subjectId" validate:"required"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content,omitempty"`
}

// UpdateNoteRequest updates a note
type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content,omitempty"`
}

// GenerateToolRequest generates a learning tool from a note
type GenerateToolRequest struct {
	NoteID   int64  `json:"noteId" validate:"required"`
	ToolType string `json:"toolType" validate:"required,oneof=quiz flashcards concept-map summary process-note analyze-document"`
}
