// Package backend wraps the terminal screen and turns its input into
// editor events.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Mod is the modifier state for key and mouse events.
	Mod key.Modifier

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    mouse.Button

	// Wheel is -1 for wheel up, 1 for wheel down, 0 otherwise.
	Wheel int

	// Resize event fields
	Width, Height int

	// Focused is the focus state for focus events, and true at the start
	// of a bracketed paste.
	Focused bool

	// Data is the payload of an interrupt event.
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the editor handles.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlY
	KeyCtrlZ
)

// Backend is the display surface the editor draws on.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at x, y. Positions outside the screen are
	// ignored.
	SetContent(x, y int, r rune, combining []rune, style tcell.Style)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes changes to the display.
	Show()

	// ShowCursor positions and displays the text cursor.
	ShowCursor(x, y int)

	// HideCursor hides the text cursor.
	HideCursor()

	// PollEvent waits for and returns the next event. It returns an event
	// of type EventNone once the backend has shut down.
	PollEvent() Event

	// Interrupt queues an EventInterrupt carrying data. It is safe to call
	// from any goroutine.
	Interrupt(data any) error
}
