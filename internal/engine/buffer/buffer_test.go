package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.IsModified() {
		t.Error("new buffer should not be modified")
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\r\nline2\r\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		got, ok := b.LineText(i)
		if !ok || got != want {
			t.Errorf("LineText(%d) = %q, %v; want %q", i, got, ok, want)
		}
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("expected detected CRLF, got %s", b.LineEnding())
	}

	if _, ok := b.LineText(3); ok {
		t.Error("LineText past the end should fail")
	}
	if _, ok := b.LineText(-1); ok {
		t.Error("LineText(-1) should fail")
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("a\nb\n"))
	if err != nil {
		t.Fatalf("NewBufferFromReader: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", ""}, b.Lines(0, 10)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferReplace(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		r        Range
		newText  string
		expected string
		newRange Range
		oldText  string
	}{
		{
			name:     "grow in place",
			text:     "x = 9;",
			r:        NewRange(0, 4, 5),
			newText:  "10",
			expected: "x = 10;",
			newRange: NewRange(0, 4, 6),
			oldText:  "9",
		},
		{
			name:     "shrink in place",
			text:     "x = 10;",
			r:        NewRange(0, 4, 6),
			newText:  "9",
			expected: "x = 9;",
			newRange: NewRange(0, 4, 5),
			oldText:  "10",
		},
		{
			name:     "insert line break",
			text:     "ab",
			r:        NewRange(0, 1, 1),
			newText:  "\r\n",
			expected: "a\nb",
			newRange: Range{Start: Point{0, 1}, End: Point{1, 0}},
			oldText:  "",
		},
		{
			name:     "join lines",
			text:     "one\ntwo\nthree",
			r:        Range{Start: Point{0, 3}, End: Point{2, 0}},
			newText:  " ",
			expected: "one three",
			newRange: NewRange(0, 3, 4),
			oldText:  "\ntwo\n",
		},
		{
			name:     "multi-line insert",
			text:     "ac",
			r:        NewRange(0, 1, 1),
			newText:  "b1\nb2\nb",
			expected: "ab1\nb2\nbc",
			newRange: Range{Start: Point{0, 1}, End: Point{2, 1}},
			oldText:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.text)
			res, err := b.Replace(tt.r, tt.newText)
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if got := b.Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
			if diff := cmp.Diff(tt.newRange, res.NewRange); diff != "" {
				t.Errorf("NewRange mismatch (-want +got):\n%s", diff)
			}
			if res.OldText != tt.oldText {
				t.Errorf("OldText = %q, want %q", res.OldText, tt.oldText)
			}
			if !b.IsModified() {
				t.Error("buffer should be modified")
			}
		})
	}
}

func TestBufferReplaceInvalid(t *testing.T) {
	b := NewBufferFromString("héllo\nworld")
	rev := b.RevisionID()

	tests := []struct {
		name string
		r    Range
		err  error
	}{
		{"reversed", NewRange(0, 3, 1), ErrRangeInvalid},
		{"past line end", NewRange(1, 0, 6), ErrRangeInvalid},
		{"missing line", NewRange(2, 0, 0), ErrLineOutOfRange},
		{"negative column", NewRange(0, -1, 0), ErrRangeInvalid},
		{"inside rune", NewRange(0, 2, 3), ErrRangeInvalid},
	}

	for _, tt := range tests {
		if _, err := b.Replace(tt.r, "x"); !errors.Is(err, tt.err) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.err)
		}
	}
	if b.Text() != "héllo\nworld" || b.RevisionID() != rev {
		t.Error("failed replace must leave the buffer untouched")
	}
}

func TestBufferInsertDelete(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(Point{0, 5}, ",")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if end != (Point{0, 6}) {
		t.Errorf("Insert end = %s, want (0:6)", end)
	}
	if err := b.Delete(NewRange(0, 5, 11)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Text() != "Hello d" {
		t.Errorf("Text() = %q", b.Text())
	}
}

func TestBufferUndoCoalescesInPlaceReplaces(t *testing.T) {
	b := NewBufferFromString("x = 9;")

	r := NewRange(0, 4, 5)
	for _, v := range []string{"10", "11", "8"} {
		res, err := b.Replace(r, v)
		if err != nil {
			t.Fatalf("Replace(%q): %v", v, err)
		}
		r = res.NewRange
	}
	if b.Text() != "x = 8;" {
		t.Fatalf("Text() = %q", b.Text())
	}

	if _, err := b.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if b.Text() != "x = 9;" {
		t.Errorf("after undo Text() = %q, want x = 9;", b.Text())
	}
	if b.CanUndo() {
		t.Error("drag should be a single undo step")
	}

	if _, err := b.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if b.Text() != "x = 8;" {
		t.Errorf("after redo Text() = %q, want x = 8;", b.Text())
	}
}

func TestBufferUndoTyping(t *testing.T) {
	b := NewBufferFromString("")
	p := Point{}
	for _, s := range []string{"a", "b", "c"} {
		var err error
		if p, err = b.Insert(p, s); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	for _, want := range []string{"ab", "a", ""} {
		if _, err := b.Undo(); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		if b.Text() != want {
			t.Errorf("Text() = %q, want %q", b.Text(), want)
		}
	}
	if _, err := b.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty history = %v", err)
	}
}

func TestBufferRedoClearedByEdit(t *testing.T) {
	b := NewBufferFromString("a")
	if _, err := b.Insert(Point{0, 1}, "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Insert(Point{0, 0}, "z"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo after new edit = %v, want ErrNothingToRedo", err)
	}
}

func TestBufferHistoryLimit(t *testing.T) {
	b := NewBufferFromString("", WithHistoryLimit(2))
	p := Point{}
	for _, s := range []string{"a", "b", "c"} {
		p, _ = b.Insert(p, s)
	}
	b.Undo()
	b.Undo()
	if b.CanUndo() {
		t.Error("history should hold only 2 steps")
	}
	if b.Text() != "a" {
		t.Errorf("Text() = %q, want a", b.Text())
	}
}

func TestBufferOnChange(t *testing.T) {
	b := NewBufferFromString("abc")
	var got []EditResult
	remove := b.OnChange(func(e EditResult) { got = append(got, e) })

	b.Replace(NewRange(0, 0, 1), "z")
	b.Undo()
	remove()
	b.Replace(NewRange(0, 0, 1), "y")

	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2", len(got))
	}
	if got[0].NewText != "z" || got[1].NewText != "a" {
		t.Errorf("notifications = %v", got)
	}
}

func TestBufferWriteTo(t *testing.T) {
	b := NewBufferFromString("a\r\nb\r\n")
	var sb strings.Builder
	if _, err := b.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if sb.String() != "a\r\nb\r\n" {
		t.Errorf("WriteTo = %q", sb.String())
	}

	b = NewBufferFromString("a\r\nb", WithLineEnding(LineEndingLF))
	sb.Reset()
	b.WriteTo(&sb)
	if sb.String() != "a\nb" {
		t.Errorf("WriteTo with LF = %q", sb.String())
	}
}

func TestBufferMarkSaved(t *testing.T) {
	b := NewBufferFromString("a")
	b.Insert(Point{0, 1}, "b")
	b.MarkSaved()
	if b.IsModified() {
		t.Error("buffer should not be modified after MarkSaved")
	}
}

func TestClampPoint(t *testing.T) {
	b := NewBufferFromString("héllo\nab")
	tests := []struct {
		in, want Point
	}{
		{Point{-1, 3}, Point{0, 0}},
		{Point{0, 2}, Point{0, 1}},
		{Point{0, 99}, Point{0, 6}},
		{Point{5, 0}, Point{1, 2}},
		{Point{1, -4}, Point{1, 0}},
	}
	for _, tt := range tests {
		if got := b.ClampPoint(tt.in); got != tt.want {
			t.Errorf("ClampPoint(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\r\nb\nc\n", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}
