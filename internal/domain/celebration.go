package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Celebration is the pairing of a staff member, a wheel outcome, and the quote
// text shown for it. A provisional celebration carries a deterministic template
// quote; the final one carries either the generated text or, on failure, the
// same template. Only the final version is persisted.
type Celebration struct {
	ID          uuid.UUID `json:"id"`
	StaffID     uuid.UUID `json:"staffId"`
	StaffName   string    `json:"staffName"`
	Outcome     string    `json:"outcome"`
	Quote       string    `json:"quote"`
	Provisional bool      `json:"provisional"`
	SpunAt      time.Time `json:"spunAt"`
}

type CelebrationRepository interface {
	Append(ctx context.Context, c *Celebration) error
	ListForStaff(ctx context.Context, staffID uuid.UUID) ([]Celebration, error)
}

// QuoteRequest carries everything the text service needs for one quote.
type QuoteRequest struct {
	StaffName      string
	Department     string
	FavoriteThings []string
	Outcome        string
}

// QuoteGenerator produces a congratulatory quote via an external text service.
type QuoteGenerator interface {
	Generate(ctx context.Context, req QuoteRequest) (string, error)
}
