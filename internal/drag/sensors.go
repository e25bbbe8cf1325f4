package drag

import (
	"math"
	"time"
)

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

// Distance returns the straight-line distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Decision is an activation sensor's verdict on a pressed but not yet active gesture.
type Decision int

const (
	// Pending keeps waiting for more input
	Pending Decision = iota
	// Activate starts the drag
	Activate
	// Abort gives the gesture back to the page (a click or a scroll)
	Abort
)

// Sensor decides when a press becomes a drag, given how far the pointer has moved
// from where it went down and how long ago that was.
type Sensor interface {
	Check(moved float64, elapsed time.Duration) Decision
}

// PointerSensor activates once the pointer has moved Distance pixels, so plain clicks
// on the item still reach it.
type PointerSensor struct {
	Distance float64
}

// Check implements Sensor.
func (s PointerSensor) Check(moved float64, _ time.Duration) Decision {
	if moved >= s.Distance {
		return Activate
	}
	return Pending
}

// TouchSensor activates after the finger has been held for Delay without drifting more than
// Tolerance pixels. Drifting further first is treated as a page scroll.
type TouchSensor struct {
	Delay     time.Duration
	Tolerance float64
}

// Check implements Sensor.
func (s TouchSensor) Check(moved float64, elapsed time.Duration) Decision {
	if moved > s.Tolerance {
		return Abort
	}
	if elapsed >= s.Delay {
		return Activate
	}
	return Pending
}

// Default activation constraints.
var (
	DefaultPointerSensor = PointerSensor{Distance: 8}
	DefaultTouchSensor   = TouchSensor{Delay: 250 * time.Millisecond, Tolerance: 5}
)

// Tracker feeds raw press/move/release input for one input modality through a Sensor
// into a Coordinator.
type Tracker[T any] struct {
	coordinator *Coordinator[T]
	sensor      Sensor

	pressed bool
	active  bool
	id      string
	origin  Point
	start   time.Time
}

// NewTracker binds sensor to coordinator.
func NewTracker[T any](coordinator *Coordinator[T], sensor Sensor) *Tracker[T] {
	return &Tracker[T]{coordinator: coordinator, sensor: sensor}
}

// Active reports whether the tracked press has turned into a drag.
func (t *Tracker[T]) Active() bool {
	return t.active
}

// Down records a press on the item with identifier id.
func (t *Tracker[T]) Down(id string, at Point, now time.Time) {
	t.pressed = true
	t.active = false
	t.id = id
	t.origin = at
	t.start = now
}

// Move reports pointer movement (or, for touch holds, the unchanged position at a later time).
// It returns true while a drag is active.
func (t *Tracker[T]) Move(at Point, now time.Time) bool {
	if !t.pressed || t.active {
		return t.active
	}

	switch t.sensor.Check(t.origin.Distance(at), now.Sub(t.start)) {
	case Activate:
		t.active = true
		t.coordinator.DragStart(t.id)
	case Abort:
		t.pressed = false
	}
	return t.active
}

// Up releases the press over overID (empty when outside any target).
// It returns true when the release completed a drag that reordered the list.
func (t *Tracker[T]) Up(overID string) bool {
	wasActive := t.active
	id := t.id
	t.clear()
	if !wasActive {
		return false
	}
	return t.coordinator.DragEnd(EndEvent{ActiveID: id, OverID: overID})
}

// Cancel aborts the gesture, cancelling an active drag.
func (t *Tracker[T]) Cancel() {
	if t.active {
		t.coordinator.DragCancel()
	}
	t.clear()
}

func (t *Tracker[T]) clear() {
	t.pressed = false
	t.active = false
	t.id = ""
}
