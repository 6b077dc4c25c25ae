package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// NoteRepository implements note.Repository
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) note.Repository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, subject_id, user_id, title, content, file_url, file_type, created_at, updated_at`

func scanNote(row interface{ Scan(...interface{}) error }) (*note.Note, error) {
	var n note.Note
	var content, fileURL, fileType sql.NullString

	err := row.Scan(&n.ID, &n.SubjectID, &n.UserID, &n.Title, &content, &fileURL, &fileType, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		n.Content = content.String
	}
	if fileURL.Valid {
		v := fileURL.String
		n.FileURL = &v
	}
	if fileType.Valid {
		v := fileType.String
		n.FileType = &v
	}

	return &n, nil
}

// CreateWithinLimit inserts the note only while the owner is under their plan
// note limit, counted across all of their subjects. Single statement, so
// concurrent creates serialize on the count.
func (r *NoteRepository) CreateWithinLimit(ctx context.Context, n *note.Note, limit int) (bool, error) {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	query := `
		INSERT INTO notes (subject_id, user_id, title, content, file_url, file_type, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE $9 = -1 OR (SELECT COUNT(*) FROM notes WHERE user_id = $2) < $9
		RETURNING id
	`

	var fileURL, fileType sql.NullString
	if n.FileURL != nil {
		fileURL = sql.NullString{String: *n.FileURL, Valid: true}
	}
	if n.FileType != nil {
		fileType = sql.NullString{String: *n.FileType, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		n.SubjectID, n.UserID, n.Title, n.Content, fileURL, fileType, n.CreatedAt, n.UpdatedAt, limit,
	).Scan(&n.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.DatabaseError("Failed to create note", err)
	}

	return true, nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*note.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Note")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get note", err)
	}

	return n, nil
}

// ListBySubject retrieves all notes within a subject, newest first
func (r *NoteRepository) ListBySubject(ctx context.Context, subjectID int64) ([]*note.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE subject_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list notes", err)
	}
	defer rows.Close()

	var notes []*note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan note", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate notes", err)
	}

	return notes, nil
}

// Update updates a note's title, content and file reference
func (r *NoteRepository) Update(ctx context.Context, n *note.Note) error {
	n.UpdatedAt = time.Now()

	query := `
		UPDATE notes
		SET title = $1, content = $2, file_url = $3, file_type = $4, updated_at = $5
		WHERE id = $6
	`

	var fileURL, fileType sql.NullString
	if n.FileURL != nil {
		fileURL = sql.NullString{String: *n.FileURL, Valid: true}
	}
	if n.FileType != nil {
		fileType = sql.NullString{String: *n.FileType, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, n.Title, n.Content, fileURL, fileType, n.UpdatedAt, n.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update note", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Note")
	}

	return nil
}

// Delete removes a note. Learning tools under it cascade at the database
// level.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete note", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Note")
	}

	return nil
}

// CountByUser returns the number of notes across all the user's subjects
func (r *NoteRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count notes", err)
	}
	return count, nil
}
