// Package highlight keeps the host's visual marker in step with the
// current interaction target.
//
// The Manager guarantees that the host never shows more than one marker
// for the engine: every Set removes all markers it tracks before adding a
// new one.
package highlight

import (
	"fmt"

	"github.com/dshills/scrub/internal/interact/match"
	"github.com/dshills/scrub/internal/interact/span"
	"github.com/dshills/scrub/internal/logging"
)

// MarkerID is a host-assigned marker handle.
type MarkerID string

// Surface is the part of the host editor that renders markers and the
// pointer cursor.
type Surface interface {
	// AddMarker highlights r with the given style tag.
	AddMarker(r span.Range, tag string) (MarkerID, error)

	// RemoveMarker removes a marker. Unknown IDs are ignored.
	RemoveMarker(id MarkerID)

	// SetPointerCursor overrides the pointer cursor; "" restores the
	// host default.
	SetPointerCursor(hint string)
}

// BaseTag is applied to every marker; a rule's Class is appended to it.
const BaseTag = "scrub"

// Tag returns the marker tag for a match.
func Tag(m *match.Match) string {
	if m.Rule == nil || m.Rule.Class == "" {
		return BaseTag
	}
	return BaseTag + " " + m.Rule.Class
}

// Manager tracks the markers it has added to a Surface.
type Manager struct {
	surface Surface
	markers []MarkerID
	cursor  string
	log     *logging.Logger
}

// NewManager creates a manager for surface.
func NewManager(surface Surface, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Null
	}
	return &Manager{surface: surface, log: log}
}

// Set replaces any tracked marker with one covering m.Range and applies
// the rule's cursor hint. A nil match clears the marker and the cursor
// override. If the host refuses the marker, Set returns the error and
// tracks nothing.
func (h *Manager) Set(m *match.Match) error {
	h.removeAll()

	if m == nil {
		h.setCursor("")
		return nil
	}

	id, err := h.surface.AddMarker(m.Range, Tag(m))
	if err != nil {
		h.setCursor("")
		return fmt.Errorf("adding marker at %s: %w", m.Range, err)
	}
	h.markers = append(h.markers, id)

	cursor := ""
	if m.Rule != nil {
		cursor = m.Rule.Cursor
	}
	h.setCursor(cursor)
	return nil
}

// Clear removes all markers and the cursor override.
func (h *Manager) Clear() {
	h.removeAll()
	h.setCursor("")
}

// Count returns the number of markers currently tracked.
func (h *Manager) Count() int {
	return len(h.markers)
}

// Markers returns a copy of the tracked marker IDs.
func (h *Manager) Markers() []MarkerID {
	out := make([]MarkerID, len(h.markers))
	copy(out, h.markers)
	return out
}

func (h *Manager) removeAll() {
	for _, id := range h.markers {
		h.surface.RemoveMarker(id)
	}
	h.markers = h.markers[:0]
}

func (h *Manager) setCursor(hint string) {
	if hint == h.cursor {
		return
	}
	h.cursor = hint
	h.surface.SetPointerCursor(hint)
	h.log.Debug("pointer cursor %q", hint)
}
