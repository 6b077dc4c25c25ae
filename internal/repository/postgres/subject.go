package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// SubjectRepository implements subject.Repository
type SubjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *sql.DB) subject.Repository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `id, user_id, name, description, color, created_at, updated_at`

func scanSubject(row interface{ Scan(...interface{}) error }) (*subject.Subject, error) {
	var s subject.Subject
	var description, color sql.NullString

	err := row.Scan(&s.ID, &s.UserID, &s.Name, &description, &color, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		s.Description = description.String
	}
	if color.Valid {
		s.Color = color.String
	}

	return &s, nil
}

// CreateWithinLimit inserts the subject only while the owner is under their
// plan limit. The count and the insert run as one statement so concurrent
// creates serialize on the row count.
func (r *SubjectRepository) CreateWithinLimit(ctx context.Context, s *subject.Subject, limit int) (bool, error) {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO subjects (user_id, name, description, color, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE $7 = -1 OR (SELECT COUNT(*) FROM subjects WHERE user_id = $1) < $7
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.Name, s.Description, s.Color, s.CreatedAt, s.UpdatedAt, limit,
	).Scan(&s.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.DatabaseError("Failed to create subject", err)
	}

	return true, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*subject.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`

	s, err := scanSubject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Subject")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subject", err)
	}

	return s, nil
}

// ListByUser retrieves all subjects owned by a user, newest first
func (r *SubjectRepository) ListByUser(ctx context.Context, userID int64) ([]*subject.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subjects", err)
	}
	defer rows.Close()

	var subjects []*subject.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan subject", err)
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate subjects", err)
	}

	return subjects, nil
}

// Update updates a subject
func (r *SubjectRepository) Update(ctx context.Context, s *subject.Subject) error {
	s.UpdatedAt = time.Now()

	query := `
		UPDATE subjects
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, s.Name, s.Description, s.Color, s.UpdatedAt, s.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update subject", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Subject")
	}

	return nil
}

// Delete removes a subject. Notes and learning tools under it cascade at the
// database level.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete subject", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Subject")
	}

	return nil
}

// CountByUser returns the number of subjects owned by a user
func (r *SubjectRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count subjects", err)
	}
	return count, nil
}
