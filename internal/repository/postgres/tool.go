package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// ToolRepository implements tool.Repository
type ToolRepository struct {
	db *sql.DB
}

// NewToolRepository creates a new learning tool repository
func NewToolRepository(db *sql.DB) tool.Repository {
	return &ToolRepository{db: db}
}

const toolColumns = `id, note_id, user_id, tool_type, content, created_at`

func scanTool(row interface{ Scan(...interface{}) error }) (*tool.LearningTool, error) {
	var t tool.LearningTool
	err := row.Scan(&t.ID, &t.NoteID, &t.UserID, &t.ToolType, &t.Content, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persists a generated learning tool
func (r *ToolRepository) Create(ctx context.Context, t *tool.LearningTool) error {
	t.CreatedAt = time.Now()

	query := `
		INSERT INTO learning_tools (note_id, user_id, tool_type, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, t.NoteID, t.UserID, t.ToolType, t.Content, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create learning tool", err)
	}

	return nil
}

// GetByID retrieves a learning tool by ID
func (r *ToolRepository) GetByID(ctx context.Context, id int64) (*tool.LearningTool, error) {
	query := `SELECT ` + toolColumns + ` FROM learning_tools WHERE id = $1`

	t, err := scanTool(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Learning tool")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get learning tool", err)
	}

	return t, nil
}

// ListByNote retrieves all learning tools generated from a note, newest first
func (r *ToolRepository) ListByNote(ctx context.Context, noteID int64) ([]*tool.LearningTool, error) {
	query := `SELECT ` + toolColumns + ` FROM learning_tools WHERE note_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, noteID)
}

// ListByUser retrieves all learning tools owned by a user, newest first
func (r *ToolRepository) ListByUser(ctx context.Context, userID int64) ([]*tool.LearningTool, error) {
	query := `SELECT ` + toolColumns + ` FROM learning_tools WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *ToolRepository) list(ctx context.Context, query string, arg interface{}) ([]*tool.LearningTool, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list learning tools", err)
	}
	defer rows.Close()

	var tools []*tool.LearningTool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan learning tool", err)
		}
		tools = append(tools, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate learning tools", err)
	}

	return tools, nil
}

// Delete removes a learning tool
func (r *ToolRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM learning_tools WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete learning tool", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Learning tool")
	}

	return nil
}
