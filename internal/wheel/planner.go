package wheel

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Extra full revolutions before settling, drawn uniformly.
	minExtraRevolutions = 4
	maxExtraRevolutions = 7

	// DefaultMinDuration and DefaultMaxDuration bound the per-spin animation
	// length when no policy is configured.
	DefaultMinDuration = 4 * time.Second
	DefaultMaxDuration = 9 * time.Second
)

// Rand is the random source used by the planner. *math/rand.Rand satisfies it;
// tests substitute a deterministic sequence.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Session holds the parameters and committed result of one spin, from trigger
// to settle. The outcome is fully determined by StartRotation+Delta and must
// not change after planning.
type Session struct {
	ID            uuid.UUID
	StartRotation float64
	Delta         float64
	Slot          int
	Outcome       string
	Duration      time.Duration
}

// TargetRotation is the absolute rotation the animation must terminate at.
func (s Session) TargetRotation() float64 {
	return s.StartRotation + s.Delta
}

// Planner computes spin sessions. Pure: a session is a function of the current
// rotation and the injected random source, no I/O.
type Planner struct {
	wheel       *Wheel
	rng         Rand
	minDuration time.Duration
	maxDuration time.Duration
}

func NewPlanner(w *Wheel, rng Rand, minDuration, maxDuration time.Duration) *Planner {
	if minDuration <= 0 {
		minDuration = DefaultMinDuration
	}
	if maxDuration < minDuration {
		maxDuration = minDuration
	}
	return &Planner{wheel: w, rng: rng, minDuration: minDuration, maxDuration: maxDuration}
}

// Plan draws 4-7 whole extra revolutions plus a continuous final offset in
// [0, 360) and commits the outcome the target rotation lands on. Because the
// offset is uniform over a full circle and the segments partition it into N
// equal arcs, every label is selected with probability exactly 1/N regardless
// of the starting rotation.
func (p *Planner) Plan(currentRotation float64) Session {
	revolutions := minExtraRevolutions + p.rng.Intn(maxExtraRevolutions-minExtraRevolutions+1)
	offset := p.rng.Float64() * 360

	delta := float64(revolutions)*360 + offset
	target := currentRotation + delta
	slot := p.wheel.SlotAt(target)

	duration := p.minDuration
	if span := p.maxDuration - p.minDuration; span > 0 {
		duration += time.Duration(p.rng.Float64() * float64(span))
	}

	return Session{
		ID:            uuid.New(),
		StartRotation: currentRotation,
		Delta:         delta,
		Slot:          slot,
		Outcome:       p.wheel.LabelAt(slot),
		Duration:      duration,
	}
}
