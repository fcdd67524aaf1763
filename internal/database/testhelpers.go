package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
)

// RegisterTestStaff is a helper that registers a staff member with default
// values for testing. Returns the created record.
func RegisterTestStaff(t *testing.T, pool *pgxpool.Pool, name string) *domain.Staff {
	t.Helper()

	repo := NewStaffRepository(pool)
	ctx := context.Background()

	staff, err := repo.Register(ctx, name, "Mathematics", [domain.FavoriteThingsCount]string{"reading", "music", "chess"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, staff.ID)

	return staff
}

// AppendTestResult is a helper that records a finished spin for a staff member.
func AppendTestResult(t *testing.T, pool *pgxpool.Pool, staffID uuid.UUID, outcome, quote string, spunAt time.Time) *domain.Celebration {
	t.Helper()

	repo := NewResultRepository(pool)
	ctx := context.Background()

	c := &domain.Celebration{
		ID:      uuid.New(),
		StaffID: staffID,
		Outcome: outcome,
		Quote:   quote,
		SpunAt:  spunAt,
	}
	require.NoError(t, repo.Append(ctx, c))

	return c
}
