package overlay

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/scrub/internal/engine/buffer"
)

func TestManagerAddRemove(t *testing.T) {
	m := NewManager(nil)

	id := m.Add(buffer.NewRange(0, 4, 6), "scrub", PriorityNormal)
	if id == "" {
		t.Fatal("Add returned an empty ID")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if mk, ok := m.Get(id); !ok || mk.Tag != "scrub" {
		t.Errorf("Get(%s) = %+v, %v", id, mk, ok)
	}

	other := m.Add(buffer.NewRange(0, 4, 6), "scrub", PriorityNormal)
	if other == id {
		t.Error("IDs must be unique")
	}

	if !m.Remove(id) {
		t.Error("Remove of a known ID should succeed")
	}
	if m.Remove(id) {
		t.Error("second Remove should report false")
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d", m.Len())
	}
}

func TestSpansForLine(t *testing.T) {
	m := NewManager(nil)
	m.Add(buffer.NewRange(1, 2, 5), "scrub", PriorityNormal)
	m.Add(buffer.Range{Start: buffer.Point{Line: 0, Column: 3}, End: buffer.Point{Line: 2, Column: 1}}, "sel", PriorityLow)
	m.Add(buffer.NewRange(1, 3, 3), "empty", PriorityHigh)

	want := []Span{
		{StartCol: 0, EndCol: 8, Tag: "sel", Priority: PriorityLow},
		{StartCol: 2, EndCol: 5, Tag: "scrub", Priority: PriorityNormal},
	}
	if diff := cmp.Diff(want, m.SpansForLine(1, 8)); diff != "" {
		t.Errorf("SpansForLine(1) mismatch (-want +got):\n%s", diff)
	}

	want = []Span{{StartCol: 3, EndCol: 4, Tag: "sel", Priority: PriorityLow}}
	if diff := cmp.Diff(want, m.SpansForLine(0, 4)); diff != "" {
		t.Errorf("SpansForLine(0) mismatch (-want +got):\n%s", diff)
	}

	if spans := m.SpansForLine(3, 10); len(spans) != 0 {
		t.Errorf("SpansForLine(3) = %v, want none", spans)
	}
}

func TestThemeStyle(t *testing.T) {
	th := NewTheme(tcell.StyleDefault)
	base := tcell.StyleDefault.Bold(true)
	link := tcell.StyleDefault.Underline(true)
	exact := tcell.StyleDefault.Italic(true)
	th.Set("scrub", base)
	th.Set("url", link)
	th.Set("scrub special", exact)

	tests := []struct {
		tag  string
		want tcell.Style
	}{
		{"scrub", base},
		{"scrub url", link},
		{"scrub special", exact},
		{"scrub other", base},
		{"nothing", tcell.StyleDefault},
	}
	for _, tt := range tests {
		if got := th.Style(tt.tag); got != tt.want {
			t.Errorf("Style(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{StartCol: 2, EndCol: 4}
	for col, want := range map[int]bool{1: false, 2: true, 3: true, 4: false} {
		if got := s.Contains(col); got != want {
			t.Errorf("Contains(%d) = %v, want %v", col, got, want)
		}
	}
}
