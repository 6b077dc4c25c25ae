package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, role, plan_type,
	daily_credits, credits_used_today, last_credit_reset,
	subscription_status, subscription_period, subscription_start_date, subscription_end_date,
	notes_limit, subjects_limit,
	current_streak, longest_streak, last_activity_date,
	is_early_user, early_user_number, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*user.User, error) {
	var u user.User
	var status sql.NullString
	var period sql.NullString
	var startDate, endDate, lastActivity sql.NullTime
	var earlyNumber sql.NullInt64

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.PlanType,
		&u.DailyCredits, &u.CreditsUsedToday, &u.LastCreditReset,
		&status, &period, &startDate, &endDate,
		&u.NotesLimit, &u.SubjectsLimit,
		&u.CurrentStreak, &u.LongestStreak, &lastActivity,
		&u.IsEarlyUser, &earlyNumber, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if status.Valid {
		u.SubscriptionStatus = &status.String
	}
	if period.Valid {
		u.SubscriptionPeriod = period.String
	}
	if startDate.Valid {
		t := startDate.Time
		u.SubscriptionStartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		u.SubscriptionEndDate = &t
	}
	if lastActivity.Valid {
		t := lastActivity.Time
		u.LastActivityDate = &t
	}
	if earlyNumber.Valid {
		n := int(earlyNumber.Int64)
		u.EarlyUserNumber = &n
	}

	return &u, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.LastCreditReset.IsZero() {
		u.LastCreditReset = now
	}

	query := `
		INSERT INTO users (email, username, password_hash, role, plan_type,
			daily_credits, credits_used_today, last_credit_reset,
			notes_limit, subjects_limit,
			is_early_user, early_user_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	var earlyNumber sql.NullInt64
	if u.EarlyUserNumber != nil {
		earlyNumber = sql.NullInt64{Int64: int64(*u.EarlyUserNumber), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.Role, u.PlanType,
		u.DailyCredits, u.CreditsUsedToday, u.LastCreditReset,
		u.NotesLimit, u.SubjectsLimit,
		u.IsEarlyUser, earlyNumber, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Email already registered")
		}
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET email = $1, username = $2, role = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, u.Email, u.Username, u.Role, u.UpdatedAt, u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// Delete deletes a user; subjects, notes and tools cascade via foreign keys
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return 0, errors.DatabaseError("Failed to count users", err)
	}
	return total, nil
}

// ResetDailyCredits zeroes credits_used_today and stamps last_credit_reset
func (r *UserRepository) ResetDailyCredits(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE users
		SET credits_used_today = 0, last_credit_reset = $1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return errors.DatabaseError("Failed to reset daily credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// ConsumeCredits performs the conditional increment of credits_used_today.
// The guard lives in the WHERE clause, so two concurrent calls cannot both
// pass a stale check.
func (r *UserRepository) ConsumeCredits(ctx context.Context, id int64, amount int) (bool, error) {
	query := `
		UPDATE users
		SET credits_used_today = credits_used_today + $1, updated_at = NOW()
		WHERE id = $2 AND daily_credits - credits_used_today >= $1
	`

	result, err := r.db.ExecContext(ctx, query, amount, id)
	if err != nil {
		return false, errors.DatabaseError("Failed to consume credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows > 0, nil
}

// ApplyPlan writes a full plan transition in one update
func (r *UserRepository) ApplyPlan(ctx context.Context, id int64, change user.PlanChange) error {
	query := `
		UPDATE users
		SET plan_type = $1,
			daily_credits = $2,
			notes_limit = $3,
			subjects_limit = $4,
			subscription_status = $5,
			subscription_period = $6,
			subscription_start_date = $7,
			subscription_end_date = $8,
			credits_used_today = 0,
			last_credit_reset = $9,
			updated_at = $9
		WHERE id = $10
	`

	var startDate, endDate sql.NullTime
	if change.StartDate != nil {
		startDate = sql.NullTime{Time: *change.StartDate, Valid: true}
	}
	if change.EndDate != nil {
		endDate = sql.NullTime{Time: *change.EndDate, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		change.PlanType, change.DailyCredits, change.NotesLimit, change.SubjectsLimit,
		change.Status, change.Period, startDate, endDate, change.ChangedAt, id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to apply plan change", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// UpdateStreak persists streak counters and the last activity timestamp
func (r *UserRepository) UpdateStreak(ctx context.Context, id int64, current, longest int, lastActivity time.Time) error {
	query := `
		UPDATE users
		SET current_streak = $1, longest_streak = $2, last_activity_date = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, current, longest, lastActivity, id)
	if err != nil {
		return errors.DatabaseError("Failed to update streak", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// ResetStaleCredits zeroes stale credit counters in bulk
func (r *UserRepository) ResetStaleCredits(ctx context.Context, cutoff, at time.Time) (int64, error) {
	query := `
		UPDATE users
		SET credits_used_today = 0, last_credit_reset = $1, updated_at = $1
		WHERE last_credit_reset <= $2 AND credits_used_today > 0
	`

	result, err := r.db.ExecContext(ctx, query, at, cutoff)
	if err != nil {
		return 0, errors.DatabaseError("Failed to reset stale credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}
