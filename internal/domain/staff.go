package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Staff statuses are derived, never stored: a staff member is completed once at
// least one celebration has been recorded for them.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// FavoriteThingsCount is the fixed number of preference tags collected at
// registration.
const FavoriteThingsCount = 3

type Staff struct {
	ID             uuid.UUID                   `json:"id"`
	Name           string                      `json:"name"`
	Department     string                      `json:"department"`
	FavoriteThings [FavoriteThingsCount]string `json:"favoriteThings"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

// StaffListing is a Staff row enriched with derived registry state.
type StaffListing struct {
	Staff
	Status    string `json:"status"`
	SpinCount int    `json:"spinCount"`
}

// Analytics aggregates registry counts for the admin dashboard.
type Analytics struct {
	TotalStaff     int `json:"totalStaff"`
	PendingStaff   int `json:"pendingStaff"`
	CompletedStaff int `json:"completedStaff"`
	TotalSpins     int `json:"totalSpins"`
}

type StaffRepository interface {
	Register(ctx context.Context, name, department string, favoriteThings [FavoriteThingsCount]string) (*Staff, error)
	GetByID(ctx context.Context, staffID uuid.UUID) (*Staff, error)
	List(ctx context.Context) ([]StaffListing, error)
	CountsByStatus(ctx context.Context) (*Analytics, error)
}
