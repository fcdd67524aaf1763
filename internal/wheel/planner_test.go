package wheel

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws so planning is deterministic.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestPlanner_PlanCommitsOutcomeFromTargetRotation(t *testing.T) {
	w, err := New(DefaultSegments)
	require.NoError(t, err)

	// Intn(4) -> 1 means 5 extra revolutions; Float64 draws are the final
	// offset fraction (90/360) and the duration fraction.
	rng := &scriptedRand{ints: []int{1}, floats: []float64{0.25, 0}}
	p := NewPlanner(w, rng, 4*time.Second, 9*time.Second)

	s := p.Plan(0)
	assert.Equal(t, 0.0, s.StartRotation)
	assert.Equal(t, 1890.0, s.Delta)
	assert.Equal(t, 1890.0, s.TargetRotation())
	assert.Equal(t, 11, s.Slot)
	assert.Equal(t, DefaultSegments[11], s.Outcome)
	assert.Equal(t, 4*time.Second, s.Duration)
	assert.NotEqual(t, s.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestPlanner_OutcomeIndependentOfStartRotation(t *testing.T) {
	w, err := New(DefaultSegments)
	require.NoError(t, err)

	for _, start := range []float64{0, 123.4, 720, 3599.99} {
		rng := &scriptedRand{ints: []int{2}, floats: []float64{0.5, 0.5}}
		p := NewPlanner(w, rng, 4*time.Second, 9*time.Second)
		s := p.Plan(start)

		assert.Equal(t, s.Outcome, w.LabelAt(w.SlotAt(s.TargetRotation())),
			"outcome must match the slot the target rotation lands on")
	}
}

func TestPlanner_RevolutionsAndDurationWithinPolicy(t *testing.T) {
	w, err := New(DefaultSegments)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	p := NewPlanner(w, rng, 4*time.Second, 9*time.Second)

	current := 0.0
	for i := 0; i < 1000; i++ {
		s := p.Plan(current)

		revolutions := int(s.Delta / 360)
		assert.GreaterOrEqual(t, revolutions, 4)
		assert.LessOrEqual(t, revolutions, 7)
		assert.GreaterOrEqual(t, s.Delta, 4*360.0)
		assert.Less(t, s.Delta, 8*360.0)

		assert.GreaterOrEqual(t, s.Duration, 4*time.Second)
		assert.LessOrEqual(t, s.Duration, 9*time.Second)

		current = s.TargetRotation()
	}
}

func TestPlanner_UniformOutcomes(t *testing.T) {
	w, err := New(DefaultSegments)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(99))
	p := NewPlanner(w, rng, 4*time.Second, 4*time.Second)

	const samples = 60_000
	counts := make(map[string]int, w.Size())
	current := 0.0
	for i := 0; i < samples; i++ {
		s := p.Plan(current)
		counts[s.Outcome]++
		current = s.TargetRotation()
	}

	expected := float64(samples) / float64(w.Size())
	for _, label := range w.Labels() {
		assert.InDelta(t, expected, float64(counts[label]), expected*0.08,
			"label %q frequency outside tolerance", label)
	}
}

func TestPlanner_DefaultsAppliedForInvalidDurations(t *testing.T) {
	w, err := New([]string{"a", "b"})
	require.NoError(t, err)

	rng := &scriptedRand{ints: []int{0}, floats: []float64{0, 1}}
	p := NewPlanner(w, rng, 0, 0)

	s := p.Plan(0)
	assert.GreaterOrEqual(t, s.Duration, DefaultMinDuration)
	assert.LessOrEqual(t, s.Duration, DefaultMaxDuration)
}
