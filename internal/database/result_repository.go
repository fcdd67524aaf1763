package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
)

// ResultRepository stores finished spins in PostgreSQL. Every celebration on
// record carries the quote that was actually shown, fallback or not.
type ResultRepository struct {
	pool *pgxpool.Pool
}

var _ domain.CelebrationRepository = (*ResultRepository)(nil)

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) Append(ctx context.Context, c *domain.Celebration) error {
	const query = `
		INSERT INTO spin_results (id, staff_id, actor_name, ai_quote, spun_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query, c.ID, c.StaffID, c.Outcome, c.Quote, c.SpunAt); err != nil {
		return fmt.Errorf("failed to append spin result: %w", err)
	}

	return nil
}

func (r *ResultRepository) ListForStaff(ctx context.Context, staffID uuid.UUID) ([]domain.Celebration, error) {
	const query = `
		SELECT sr.id, sr.staff_id, s.name, sr.actor_name, sr.ai_quote, sr.spun_at
		FROM spin_results sr
		JOIN staff s ON s.id = sr.staff_id
		WHERE sr.staff_id = $1
		ORDER BY sr.spun_at DESC`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spin results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Celebration, 0)
	for rows.Next() {
		var c domain.Celebration
		if err := rows.Scan(&c.ID, &c.StaffID, &c.StaffName, &c.Outcome, &c.Quote, &c.SpunAt); err != nil {
			return nil, fmt.Errorf("failed to scan spin result: %w", err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spin result rows: %w", err)
	}

	return results, nil
}
