// Package wheel implements the spin wheel core: the fixed outcome space, the
// spin planner that commits an outcome before the animation starts, and the
// time-based animation driver that settles on exactly that outcome.
package wheel

import (
	"fmt"
	"math"
)

// DefaultSegments is the outcome space used when none is configured.
var DefaultSegments = []string{
	"Shah Rukh Khan", "Salman Khan", "Aamir Khan", "Akshay Kumar", "Hrithik Roshan",
	"Ranbir Kapoor", "Ranveer Singh", "Varun Dhawan", "Tiger Shroff", "Kartik Aaryan",
	"Amitabh Bachchan", "Ajay Devgn", "John Abraham", "Arjun Kapoor", "Sidharth Malhotra",
}

// Wheel is an ordered, fixed-size list of unique outcome labels. The order is
// significant: index i occupies the arc [i*360/N, (i+1)*360/N) on the wheel
// face. Immutable after construction.
type Wheel struct {
	labels []string
}

// New validates and builds a wheel. An empty list or a duplicate label is a
// configuration error and rejects startup.
func New(labels []string) (*Wheel, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("wheel needs at least one segment")
	}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("wheel segment label must not be empty")
		}
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("duplicate wheel segment %q", l)
		}
		seen[l] = struct{}{}
	}
	return &Wheel{labels: append([]string(nil), labels...)}, nil
}

// Size returns the number of segments N.
func (w *Wheel) Size() int {
	return len(w.labels)
}

// LabelAt returns the label at index i, reduced modulo Size.
func (w *Wheel) LabelAt(i int) string {
	n := len(w.labels)
	i %= n
	if i < 0 {
		i += n
	}
	return w.labels[i]
}

// Labels returns a copy of the segment labels in wheel order.
func (w *Wheel) Labels() []string {
	return append([]string(nil), w.labels...)
}

// SlotSize returns the angular width of one segment in degrees.
func (w *Wheel) SlotSize() float64 {
	return 360 / float64(len(w.labels))
}

// SlotAt maps an absolute wheel rotation to the index of the segment under the
// fixed pointer at the top. The wheel rotates clockwise, so the pointer reads
// the face at (360 - rotation mod 360) mod 360. This mapping is the single
// source of truth for a spin's outcome; the animation terminates at exactly
// the rotation it was computed from, so the visible stop and the recorded
// outcome always agree.
func (w *Wheel) SlotAt(rotation float64) int {
	norm := math.Mod(rotation, 360)
	if norm < 0 {
		norm += 360
	}
	pointer := math.Mod(360-norm, 360)
	// The final mod guards against floating-point overshoot at the last
	// arc boundary resolving to N.
	return int(math.Floor(pointer/w.SlotSize())) % len(w.labels)
}
