package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// PromoRepository implements promo.Repository
type PromoRepository struct {
	db *sql.DB
}

// NewPromoRepository creates a new promo code repository
func NewPromoRepository(db *sql.DB) promo.Repository {
	return &PromoRepository{db: db}
}

const promoColumns = `id, code, discount_type, discount_value, max_uses, current_uses,
	expires_at, applicable_plans, is_active, created_at`

func scanPromo(row interface{ Scan(...interface{}) error }) (*promo.PromoCode, error) {
	var p promo.PromoCode
	var expiresAt sql.NullTime
	var plans pq.StringArray

	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.MaxUses, &p.CurrentUses,
		&expiresAt, &plans, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		p.ExpiresAt = &t
	}
	p.ApplicablePlans = []string(plans)

	return &p, nil
}

// GetByCode retrieves a promo code. Lookup is case-insensitive: codes are
// stored upper-cased.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`

	p, err := scanPromo(r.db.QueryRowContext(ctx, query, strings.ToUpper(code)))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Promo code")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get promo code", err)
	}

	return p, nil
}

// Create creates a promo code
func (r *PromoRepository) Create(ctx context.Context, p *promo.PromoCode) error {
	p.Code = strings.ToUpper(p.Code)
	p.CreatedAt = time.Now()

	query := `
		INSERT INTO promo_codes (code, discount_type, discount_value, max_uses, current_uses,
			expires_at, applicable_plans, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var expiresAt sql.NullTime
	if p.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *p.ExpiresAt, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		p.Code, p.DiscountType, p.DiscountValue, p.MaxUses, p.CurrentUses,
		expiresAt, pq.Array(p.ApplicablePlans), p.IsActive, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Promo code already exists")
		}
		return errors.DatabaseError("Failed to create promo code", err)
	}

	return nil
}

// List retrieves all promo codes, newest first
func (r *PromoRepository) List(ctx context.Context) ([]*promo.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list promo codes", err)
	}
	defer rows.Close()

	var promos []*promo.PromoCode
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan promo code", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate promo codes", err)
	}

	return promos, nil
}

// Update updates a promo code
func (r *PromoRepository) Update(ctx context.Context, p *promo.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET discount_type = $1, discount_value = $2, max_uses = $3,
			expires_at = $4, applicable_plans = $5, is_active = $6
		WHERE code = $7
	`

	var expiresAt sql.NullTime
	if p.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *p.ExpiresAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		p.DiscountType, p.DiscountValue, p.MaxUses,
		expiresAt, pq.Array(p.ApplicablePlans), p.IsActive,
		strings.ToUpper(p.Code),
	)
	if err != nil {
		return errors.DatabaseError("Failed to update promo code", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Promo code")
	}

	return nil
}

// Delete removes a promo code
func (r *PromoRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE code = $1`, strings.ToUpper(code))
	if err != nil {
		return errors.DatabaseError("Failed to delete promo code", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Promo code")
	}

	return nil
}

// Redeem increments current_uses in a single conditional statement. The rows
// affected count tells the caller whether the code was still redeemable at
// the moment of the update, so two concurrent redemptions of a nearly
// exhausted code cannot both succeed. A non-empty sessionID is recorded in
// promo_redemptions first; losing that insert means the session already
// redeemed, which reads as an applied no-op.
func (r *PromoRepository) Redeem(ctx context.Context, code, sessionID string) (bool, error) {
	code = strings.ToUpper(code)

	if sessionID != "" {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO promo_redemptions (code, session_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, code, sessionID)
		if err != nil {
			return false, errors.DatabaseError("Failed to record promo redemption", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return false, errors.DatabaseError("Failed to get affected rows", err)
		}
		if rows == 0 {
			return true, nil
		}
	}

	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1
		WHERE code = $1
			AND is_active
			AND (expires_at IS NULL OR expires_at > NOW())
			AND (max_uses = 0 OR current_uses < max_uses)
	`

	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return false, errors.DatabaseError("Failed to redeem promo code", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows > 0, nil
}
