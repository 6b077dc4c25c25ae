package tool

import "time"

// LearningTool is an AI-generated study artifact derived from a note
type LearningTool struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	ToolType  string    `json:"tool_type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Tool types and their fixed credit costs live in the subscription service;
// these are the recognized names.
const (
	TypeQuiz            = "quiz"
	TypeFlashcards      = "flashcards"
	TypeConceptMap      = "concept-map"
	TypeSummary         = "summary"
	TypeProcessNote     = "process-note"
	TypeAnalyzeDocument = "analyze-document"
)

// KnownType reports whether t is a recognized tool type
func KnownType(t string) bool {
	switch t {
	case TypeQuiz, TypeFlashcards, TypeConceptMap, TypeSummary, TypeProcessNote, TypeAnalyzeDocument:
		return true
	}
	return false
}
