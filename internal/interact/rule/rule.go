package rule

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact/span"
)

// Errors returned by NewSet.
var (
	ErrNoPattern     = errors.New("rule has no pattern")
	ErrNoName        = errors.New("rule has no name")
	ErrDuplicateName = errors.New("duplicate rule name")
	ErrEmptySet      = errors.New("rule set is empty")
)

// Handle identifies one live match. Handles are never reused within an
// engine's lifetime.
type Handle uint64

// Editor is the engine surface a hook may use. SetText is the only
// sanctioned way for a rule to change the buffer.
type Editor interface {
	// SetText replaces the text of the match identified by h. Calls with
	// a handle that is neither current nor pinned are ignored.
	SetText(h Handle, text string)

	// Pin keeps h writable after it stops being the current target,
	// until release is called. Popup editors use this.
	Pin(h Handle) (release func())
}

// Call carries the arguments of one hook invocation.
type Call struct {
	// Text is the matched text at the time of the call.
	Text string

	// Event is the pointer event that triggered the call. It is nil for
	// OnDragEnd when the drag was ended by a key or leave event.
	Event *mouse.Event

	// Target identifies the match being manipulated.
	Target Handle

	// Start is the buffer position where the match begins.
	Start span.Position
}

// Hook is a rule callback.
type Hook func(ed Editor, c *Call)

// Hooks holds the optional callbacks of a rule.
type Hooks struct {
	OnClick     Hook
	OnDragStart Hook
	OnDrag      Hook
	OnDragEnd   Hook
}

// Rule describes one recognizable value type.
type Rule struct {
	// Name identifies the rule in configuration and logs.
	Name string

	// Pattern is applied to a single line at a time.
	Pattern *regexp.Regexp

	// Cursor is a pointer-cursor hint shown while the rule is targeted.
	Cursor string

	// Class is an optional highlight style tag.
	Class string

	Hooks Hooks
}

// Capability records which hooks a rule provides.
type Capability uint8

const (
	CapClick Capability = 1 << iota
	CapDragStart
	CapDrag
	CapDragEnd
)

// String returns a compact representation like "click|drag".
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	names := []struct {
		cap  Capability
		name string
	}{
		{CapClick, "click"},
		{CapDragStart, "drag-start"},
		{CapDrag, "drag"},
		{CapDragEnd, "drag-end"},
	}
	s := ""
	for _, n := range names {
		if c&n.cap == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	return s
}

func capabilitiesOf(h Hooks) Capability {
	var c Capability
	if h.OnClick != nil {
		c |= CapClick
	}
	if h.OnDragStart != nil {
		c |= CapDragStart
	}
	if h.OnDrag != nil {
		c |= CapDrag
	}
	if h.OnDragEnd != nil {
		c |= CapDragEnd
	}
	return c
}

// Entry is a registered rule with its priority and derived capabilities.
type Entry struct {
	Rule

	// Index is the rule's position in its Set.
	Index int

	caps Capability
}

// Capabilities returns the hooks present on the rule.
func (e *Entry) Capabilities() Capability {
	return e.caps
}

// Has returns true if the rule provides the hook.
func (e *Entry) Has(c Capability) bool {
	return e.caps&c != 0
}

// CanClick returns true if the rule reacts to clicks.
func (e *Entry) CanClick() bool {
	return e.Has(CapClick)
}

// CanDrag returns true if the rule is drag-capable. Only OnDrag makes a
// rule drag-capable; OnDragStart and OnDragEnd alone do not.
func (e *Entry) CanDrag() bool {
	return e.Has(CapDrag)
}

// Set is an ordered, validated collection of rules.
type Set struct {
	entries []*Entry
	byName  map[string]*Entry
}

// NewSet validates rules and registers them in order.
func NewSet(rules ...Rule) (*Set, error) {
	if len(rules) == 0 {
		return nil, ErrEmptySet
	}

	s := &Set{
		entries: make([]*Entry, 0, len(rules)),
		byName:  make(map[string]*Entry, len(rules)),
	}
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrNoName)
		}
		if r.Pattern == nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrNoPattern)
		}
		if _, dup := s.byName[r.Name]; dup {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrDuplicateName)
		}
		e := &Entry{Rule: r, Index: i, caps: capabilitiesOf(r.Hooks)}
		s.entries = append(s.entries, e)
		s.byName[r.Name] = e
	}
	return s, nil
}

// MustSet is like NewSet but panics on error. Intended for static rule
// tables and tests.
func MustSet(rules ...Rule) *Set {
	s, err := NewSet(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns the registered rules in priority order.
func (s *Set) Entries() []*Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Lookup returns the rule registered under name.
func (s *Set) Lookup(name string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.byName[name]
	return e, ok
}
