package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/dshills/scrub/internal/interact/match"
	"github.com/dshills/scrub/internal/interact/rule"
	"github.com/dshills/scrub/internal/interact/span"
)

type fakeSurface struct {
	next    int
	markers map[MarkerID]string
	cursor  string
	cursors int
	fail    bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{markers: make(map[MarkerID]string)}
}

func (f *fakeSurface) AddMarker(r span.Range, tag string) (MarkerID, error) {
	if f.fail {
		return "", errors.New("no markers today")
	}
	f.next++
	id := MarkerID(fmt.Sprintf("m%d", f.next))
	f.markers[id] = tag
	return id, nil
}

func (f *fakeSurface) RemoveMarker(id MarkerID) {
	delete(f.markers, id)
}

func (f *fakeSurface) SetPointerCursor(hint string) {
	f.cursor = hint
	f.cursors++
}

func testMatch(t *testing.T, class, cursor string) *match.Match {
	t.Helper()
	set := rule.MustSet(rule.Rule{Name: "n", Pattern: regexp.MustCompile(`\d+`), Class: class, Cursor: cursor})
	m := match.Find(set, "x = 42", 0, 4)
	if m == nil {
		t.Fatal("expected match")
	}
	return m
}

func TestSetAddsSingleMarker(t *testing.T) {
	s := newFakeSurface()
	h := NewManager(s, nil)
	m := testMatch(t, "num", "ew-resize")

	for i := 0; i < 3; i++ {
		if err := h.Set(m); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if len(s.markers) != 1 || h.Count() != 1 {
			t.Fatalf("after Set #%d: host has %d markers, manager tracks %d", i, len(s.markers), h.Count())
		}
	}

	for _, tag := range s.markers {
		if tag != "scrub num" {
			t.Errorf("tag = %q, want %q", tag, "scrub num")
		}
	}
	if s.cursor != "ew-resize" {
		t.Errorf("cursor = %q, want ew-resize", s.cursor)
	}
	if s.cursors != 1 {
		t.Errorf("cursor set %d times, want 1", s.cursors)
	}
}

func TestSetNilClears(t *testing.T) {
	s := newFakeSurface()
	h := NewManager(s, nil)

	_ = h.Set(testMatch(t, "", "pointer"))
	if err := h.Set(nil); err != nil {
		t.Fatalf("Set(nil): %v", err)
	}

	if len(s.markers) != 0 || h.Count() != 0 {
		t.Errorf("markers remain: host %d, manager %d", len(s.markers), h.Count())
	}
	if s.cursor != "" {
		t.Errorf("cursor = %q, want cleared", s.cursor)
	}
}

func TestSetWithoutCursorHintClearsOverride(t *testing.T) {
	s := newFakeSurface()
	h := NewManager(s, nil)

	_ = h.Set(testMatch(t, "", "pointer"))
	_ = h.Set(testMatch(t, "", ""))
	if s.cursor != "" {
		t.Errorf("cursor = %q, want cleared for a rule without a hint", s.cursor)
	}
}

func TestSetHostFailure(t *testing.T) {
	s := newFakeSurface()
	h := NewManager(s, nil)
	_ = h.Set(testMatch(t, "", "pointer"))

	s.fail = true
	if err := h.Set(testMatch(t, "", "pointer")); err == nil {
		t.Fatal("expected error when host refuses marker")
	}
	if len(s.markers) != 0 || h.Count() != 0 {
		t.Errorf("stale marker left behind: host %d, manager %d", len(s.markers), h.Count())
	}
	if s.cursor != "" {
		t.Errorf("cursor = %q, want cleared", s.cursor)
	}
}

func TestTag(t *testing.T) {
	if got := Tag(testMatch(t, "", "")); got != "scrub" {
		t.Errorf("Tag = %q, want scrub", got)
	}
	if got := Tag(testMatch(t, "url", "")); got != "scrub url" {
		t.Errorf("Tag = %q, want %q", got, "scrub url")
	}
}

func TestClear(t *testing.T) {
	s := newFakeSurface()
	h := NewManager(s, nil)
	_ = h.Set(testMatch(t, "", "move"))

	h.Clear()
	if len(s.markers) != 0 || s.cursor != "" {
		t.Errorf("Clear left markers=%d cursor=%q", len(s.markers), s.cursor)
	}
	if len(h.Markers()) != 0 {
		t.Error("Markers should be empty after Clear")
	}
}
