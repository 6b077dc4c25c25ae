package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// PlanRepository implements plan.Repository
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB) plan.Repository {
	return &PlanRepository{db: db}
}

const planColumns = `id, plan_type, name, description, monthly_price, yearly_price, currency,
	daily_credits, notes_limit, subjects_limit, features, is_active, sort_order,
	discount_percent, discount_valid_until, created_at, updated_at`

func scanPlan(row interface{ Scan(...interface{}) error }) (*plan.Plan, error) {
	var p plan.Plan
	var description sql.NullString
	var discountUntil sql.NullTime
	var features pq.StringArray

	err := row.Scan(
		&p.ID, &p.PlanType, &p.Name, &description, &p.MonthlyPrice, &p.YearlyPrice, &p.Currency,
		&p.DailyCredits, &p.NotesLimit, &p.SubjectsLimit, &features, &p.IsActive, &p.SortOrder,
		&p.DiscountPercent, &discountUntil, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = description.String
	}
	if discountUntil.Valid {
		t := discountUntil.Time
		p.DiscountValidUntil = &t
	}
	p.Features = []string(features)

	return &p, nil
}

// GetByType retrieves a plan by its unique plan type
func (r *PlanRepository) GetByType(ctx context.Context, planType string) (*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_type = $1`

	p, err := scanPlan(r.db.QueryRowContext(ctx, query, planType))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	return p, nil
}

// List retrieves all plans ordered by sort_order
func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list plans", err)
	}
	defer rows.Close()

	var plans []*plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan plan", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate plans", err)
	}

	return plans, nil
}

// Create creates a new catalog entry
func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO plans (plan_type, name, description, monthly_price, yearly_price, currency,
			daily_credits, notes_limit, subjects_limit, features, is_active, sort_order,
			discount_percent, discount_valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var discountUntil sql.NullTime
	if p.DiscountValidUntil != nil {
		discountUntil = sql.NullTime{Time: *p.DiscountValidUntil, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		p.PlanType, p.Name, p.Description, p.MonthlyPrice, p.YearlyPrice, p.Currency,
		p.DailyCredits, p.NotesLimit, p.SubjectsLimit, pq.Array(p.Features), p.IsActive, p.SortOrder,
		p.DiscountPercent, discountUntil, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Plan already exists")
		}
		return errors.DatabaseError("Failed to create plan", err)
	}

	return nil
}

// Update updates a catalog entry
func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE plans
		SET name = $1, description = $2, monthly_price = $3, yearly_price = $4, currency = $5,
			daily_credits = $6, notes_limit = $7, subjects_limit = $8, features = $9,
			is_active = $10, sort_order = $11, discount_percent = $12, discount_valid_until = $13,
			updated_at = $14
		WHERE plan_type = $15
	`

	var discountUntil sql.NullTime
	if p.DiscountValidUntil != nil {
		discountUntil = sql.NullTime{Time: *p.DiscountValidUntil, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.MonthlyPrice, p.YearlyPrice, p.Currency,
		p.DailyCredits, p.NotesLimit, p.SubjectsLimit, pq.Array(p.Features),
		p.IsActive, p.SortOrder, p.DiscountPercent, discountUntil,
		p.UpdatedAt, p.PlanType,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Plan")
	}

	return nil
}

// Delete removes a catalog entry
func (r *PlanRepository) Delete(ctx context.Context, planType string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE plan_type = $1`, planType)
	if err != nil {
		return errors.DatabaseError("Failed to delete plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Plan")
	}

	return nil
}
