package domain

import (
	"context"

	"github.com/google/uuid"
)

// Event types delivered to hall displays, in the order they can occur for one
// spin. A provisional celebration is always observable before the final one.
const (
	EventSpinStarted            = "spin_started"
	EventWheelFrame             = "wheel_frame"
	EventCelebrationProvisional = "celebration_provisional"
	EventCelebrationFinal       = "celebration_final"
)

// SpinStarted announces a planned spin. TargetRotation and DurationMs let the
// display replay the exact animation the server is driving.
type SpinStarted struct {
	SpinID         uuid.UUID `json:"spinId"`
	StaffID        uuid.UUID `json:"staffId"`
	StaffName      string    `json:"staffName"`
	TargetRotation float64   `json:"targetRotation"`
	DurationMs     int64     `json:"durationMs"`
}

// WheelFrame is a periodic snapshot of the eased rotation while a spin runs.
type WheelFrame struct {
	SpinID   uuid.UUID `json:"spinId"`
	Rotation float64   `json:"rotation"`
}

// CelebrationAnnounced carries a provisional or final celebration to displays.
type CelebrationAnnounced struct {
	SpinID      uuid.UUID `json:"spinId"`
	StaffID     uuid.UUID `json:"staffId"`
	StaffName   string    `json:"staffName"`
	Outcome     string    `json:"outcome"`
	Quote       string    `json:"quote"`
	Provisional bool      `json:"provisional"`
}

// EventPublisher fans events out to hall displays, locally and across
// instances. Publishing is best-effort: a lost event never fails a spin.
type EventPublisher interface {
	PublishSpinStarted(ctx context.Context, ev SpinStarted)
	PublishWheelFrame(ctx context.Context, ev WheelFrame)
	PublishCelebration(ctx context.Context, ev CelebrationAnnounced)
}
