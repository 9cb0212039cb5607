package mouse

import (
	"fmt"
	"time"

	"github.com/dshills/scrub/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates pointer movement.
	ActionMove
	// ActionLeave indicates the pointer left the tracked surface.
	ActionLeave
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionLeave:
		return "leave"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Sub returns p - other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// String returns "x,y".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Delta is the movement since the previous move event.
	Delta Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Tracker fills movement deltas for hosts that report absolute positions.
type Tracker struct {
	last   Position
	active bool
}

// Observe returns ev with Delta set relative to the previous observed
// event. Only move events carry a non-zero delta; press and release
// re-anchor the tracker without reporting movement.
func (t *Tracker) Observe(ev Event) Event {
	switch ev.Action {
	case ActionLeave:
		t.Reset()
		ev.Delta = Position{}
		return ev
	case ActionMove:
		if t.active {
			ev.Delta = ev.Position.Sub(t.last)
		} else {
			ev.Delta = Position{}
		}
	default:
		ev.Delta = Position{}
	}
	t.last = ev.Position
	t.active = true
	return ev
}

// Reset forgets the last observed position.
func (t *Tracker) Reset() {
	t.last = Position{}
	t.active = false
}

// Last returns the last observed position and whether there is one.
func (t *Tracker) Last() (Position, bool) {
	return t.last, t.active
}
