package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
)

// StaffRepository stores staff registrations in PostgreSQL.
type StaffRepository struct {
	pool *pgxpool.Pool
}

var _ domain.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) Register(ctx context.Context, name, department string, favoriteThings [domain.FavoriteThingsCount]string) (*domain.Staff, error) {
	const query = `
		INSERT INTO staff (name, department, favorite_thing_1, favorite_thing_2, favorite_thing_3)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	staff := domain.Staff{
		Name:           name,
		Department:     department,
		FavoriteThings: favoriteThings,
	}

	err := r.pool.QueryRow(ctx, query, name, department,
		favoriteThings[0], favoriteThings[1], favoriteThings[2],
	).Scan(&staff.ID, &staff.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to register staff: %w", err)
	}

	return &staff, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	const query = `
		SELECT id, name, department, favorite_thing_1, favorite_thing_2, favorite_thing_3, created_at
		FROM staff
		WHERE id = $1`

	var staff domain.Staff
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&staff.ID, &staff.Name, &staff.Department,
		&staff.FavoriteThings[0], &staff.FavoriteThings[1], &staff.FavoriteThings[2],
		&staff.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	return &staff, nil
}

func (r *StaffRepository) List(ctx context.Context) ([]domain.StaffListing, error) {
	const query = `
		SELECT s.id, s.name, s.department,
		       s.favorite_thing_1, s.favorite_thing_2, s.favorite_thing_3,
		       s.created_at, COUNT(sr.id) AS spin_count
		FROM staff s
		LEFT JOIN spin_results sr ON sr.staff_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.StaffListing, 0)
	for rows.Next() {
		var l domain.StaffListing
		err := rows.Scan(
			&l.ID, &l.Name, &l.Department,
			&l.FavoriteThings[0], &l.FavoriteThings[1], &l.FavoriteThings[2],
			&l.CreatedAt, &l.SpinCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff listing: %w", err)
		}

		l.Status = domain.StatusPending
		if l.SpinCount > 0 {
			l.Status = domain.StatusCompleted
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read staff listing rows: %w", err)
	}

	return listings, nil
}

func (r *StaffRepository) CountsByStatus(ctx context.Context) (*domain.Analytics, error) {
	const query = `
		SELECT COUNT(*) AS total_staff,
		       COUNT(*) FILTER (WHERE NOT EXISTS (
		           SELECT 1 FROM spin_results sr WHERE sr.staff_id = s.id
		       )) AS pending_staff,
		       (SELECT COUNT(*) FROM spin_results) AS total_spins
		FROM staff s`

	var a domain.Analytics
	if err := r.pool.QueryRow(ctx, query).Scan(&a.TotalStaff, &a.PendingStaff, &a.TotalSpins); err != nil {
		return nil, fmt.Errorf("failed to count staff by status: %w", err)
	}
	a.CompletedStaff = a.TotalStaff - a.PendingStaff

	return &a, nil
}
