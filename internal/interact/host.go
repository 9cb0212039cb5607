package interact

import (
	"fmt"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact/highlight"
	"github.com/dshills/scrub/internal/interact/span"
)

// Host is the editor the engine attaches to.
type Host interface {
	highlight.Surface

	// ScreenToBuffer converts screen coordinates to a buffer position.
	// ok is false when the point is outside the text.
	ScreenToBuffer(x, y int) (pos span.Position, ok bool)

	// BufferToScreen converts a buffer position to screen coordinates.
	BufferToScreen(pos span.Position) (x, y int, ok bool)

	// LineText returns the text of row without its line ending.
	LineText(row int) (string, bool)

	// Replace replaces r with text in a single buffer operation.
	Replace(r span.Range, text string) error

	// Surface returns the event source of the editable surface.
	Surface() (EventSource, error)
}

// Kind identifies the class of an input event.
type Kind uint8

const (
	PointerMove Kind = iota + 1
	PointerDown
	PointerUp
	PointerLeave
	KeyDown
	KeyUp
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerLeave:
		return "pointer-leave"
	case KeyDown:
		return "key-down"
	case KeyUp:
		return "key-up"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsPointer returns true for pointer events.
func (k Kind) IsPointer() bool {
	return k >= PointerMove && k <= PointerLeave
}

// Event is one raw input event from the host.
type Event struct {
	Kind Kind

	// Pointer holds position, delta and button for pointer events.
	Pointer mouse.Event

	// Mods is the modifier state after the event.
	Mods key.Modifier
}

// Result reports how the engine treated an event.
type Result struct {
	// Consumed means the host should suppress its default handling
	// (cursor placement, selection).
	Consumed bool
}

// Handler receives events from an EventSource.
type Handler func(Event) Result

// EventSource delivers input events scoped to the editable surface.
type EventSource interface {
	Subscribe(h Handler) Subscription
}

// Subscription is an active EventSource registration.
type Subscription interface {
	Unsubscribe()
}
