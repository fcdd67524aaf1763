package wheel

import (
	"sync"
	"time"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	"github.com/jonboulle/clockwork"
)

const frameInterval = 50 * time.Millisecond

// State is the animation driver's lifecycle state.
type State int

const (
	// Idle accepts the next Play.
	Idle State = iota
	// Running drives the rotation towards the session target.
	Running
	// Settled is the instant between reaching the target and emitting the
	// completion callback; the driver returns to Idle immediately after.
	Settled
)

// Driver plays spin sessions: it drives the visible rotation from the session
// start to its target with an eased interpolation and emits exactly one settle
// callback per accepted Play, carrying the committed session. At most one spin
// is in flight at a time; Play during Running is refused so an outcome can
// never be double-committed.
type Driver struct {
	clock clockwork.Clock
	frame time.Duration

	mu         sync.Mutex
	state      State
	rotation   float64
	generation uint64
}

func NewDriver(clock clockwork.Clock) *Driver {
	return &Driver{clock: clock, frame: frameInterval}
}

// Rotation returns the current wheel angle. While running it follows the
// eased interpolation; after settling it equals the last session's target.
func (d *Driver) Rotation() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Play starts driving the given session. onFrame, if non-nil, is invoked on
// every animation frame with the current rotation; onSettled is invoked
// exactly once when the rotation reaches the session target. Returns
// domain.ErrSpinInProgress while another session runs; callers treat that as
// a silent no-op, not a failure.
func (d *Driver) Play(s Session, onFrame func(Session, float64), onSettled func(Session)) error {
	d.mu.Lock()
	if d.state != Idle {
		d.mu.Unlock()
		return domain.ErrSpinInProgress
	}
	d.state = Running
	d.rotation = s.StartRotation
	gen := d.generation
	d.mu.Unlock()

	go d.run(s, gen, onFrame, onSettled)
	return nil
}

// Reset abandons a running session without emitting its settle callback and
// returns the driver to Idle. This is the only cancellation path and is not
// reachable from ordinary spin input.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	d.state = Idle
}

func (d *Driver) run(s Session, gen uint64, onFrame func(Session, float64), onSettled func(Session)) {
	start := d.clock.Now()
	ticker := d.clock.NewTicker(d.frame)
	defer ticker.Stop()

	for {
		<-ticker.Chan()

		elapsed := d.clock.Since(start)
		done := elapsed >= s.Duration
		fraction := 1.0
		if !done {
			fraction = easeInOutCubic(float64(elapsed) / float64(s.Duration))
		}
		rotation := s.StartRotation + s.Delta*fraction

		d.mu.Lock()
		if d.generation != gen {
			// Reset while running: drop the stale interpolation silently.
			d.mu.Unlock()
			return
		}
		d.rotation = rotation
		if done {
			d.state = Settled
		}
		d.mu.Unlock()

		if onFrame != nil {
			onFrame(s, rotation)
		}

		if done {
			onSettled(s)
			d.mu.Lock()
			if d.generation == gen {
				d.state = Idle
			}
			d.mu.Unlock()
			return
		}
	}
}

// easeInOutCubic is the interpolation curve: slow start, fast middle, slow
// finish. Monotonic in t, so the rotation never overshoots and reverses.
func easeInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
