package note

import "time"

// Note is a study note within a subject, optionally backed by an uploaded
// PDF or image
type Note struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FileURL   *string   `json:"file_url,omitempty"`
	FileType  *string   `json:"file_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
