package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ChangeFunc is called after every change with the applied edit.
type ChangeFunc func(EditResult)

// Buffer is a line-oriented text buffer.
// All methods are thread-safe. Change callbacks run after the lock is
// released, on the goroutine that made the change.
type Buffer struct {
	mu          sync.RWMutex
	lines       []string
	revisionID  RevisionID
	saved       RevisionID
	lineEnding  LineEnding
	fixedEnding bool
	tabWidth    int
	history     history

	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn ChangeFunc
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
		history:    history{limit: defaultHistoryLimit},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.saved = b.revisionID
	return b
}

// NewBufferFromString creates a buffer with initial content. Unless a
// line ending was given, the most common one in s is kept for writing.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if !b.fixedEnding {
		b.lineEnding = DetectLineEnding(s)
	}
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// CRLF may be split across reads, so normalize the whole input
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading buffer: %w", err)
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalize converts all line endings to \n.
func normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []string {
	return strings.Split(normalize(s), "\n")
}

// Read Operations

// Text returns the full buffer content joined with \n.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line without its line ending.
func (b *Buffer) LineText(line int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return "", false
	}
	return b.lines[line], true
}

// LineLen returns the byte length of a line, or -1 if it does not exist.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return -1
	}
	return len(b.lines[line])
}

// Lines returns a copy of lines [start, end), clipped to the buffer.
func (b *Buffer) Lines(start, end int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 {
		start = 0
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, b.lines[start:end])
	return out
}

// TextRange returns the text in r.
func (b *Buffer) TextRange(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.validate(r); err != nil {
		return "", err
	}
	return b.slice(r), nil
}

// ClampPoint moves p to the nearest valid position, snapping the column
// back to a rune boundary.
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Point{Line: last, Column: len(b.lines[last])}
	}
	line := b.lines[p.Line]
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	for col > 0 && col < len(line) && !utf8.RuneStart(line[col]) {
		col--
	}
	return Point{Line: p.Line, Column: col}
}

// validate checks that r lies inside the buffer on rune boundaries.
func (b *Buffer) validate(r Range) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	for _, p := range [2]Point{r.Start, r.End} {
		if p.Line < 0 || p.Line >= len(b.lines) {
			return fmt.Errorf("%w: %d", ErrLineOutOfRange, p.Line)
		}
		line := b.lines[p.Line]
		if p.Column < 0 || p.Column > len(line) {
			return fmt.Errorf("%w: column %d outside line %d", ErrRangeInvalid, p.Column, p.Line)
		}
		if p.Column < len(line) && !utf8.RuneStart(line[p.Column]) {
			return fmt.Errorf("%w: column %d splits a character", ErrRangeInvalid, p.Column)
		}
	}
	return nil
}

// slice returns the text of a validated range.
func (b *Buffer) slice(r Range) string {
	if r.SingleLine() {
		return b.lines[r.Start.Line][r.Start.Column:r.End.Column]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[r.Start.Line][r.Start.Column:])
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[r.End.Line][:r.End.Column])
	return sb.String()
}

// Write Operations

// Replace replaces the text in r with text as a single revision. Either
// the whole edit applies or the buffer is left untouched.
func (b *Buffer) Replace(r Range, text string) (EditResult, error) {
	res, err := b.replace(r, text, true)
	if err != nil {
		return EditResult{}, err
	}
	b.notify(res)
	return res, nil
}

// Insert inserts text at p and returns the end of the inserted text.
func (b *Buffer) Insert(p Point, text string) (Point, error) {
	res, err := b.Replace(Range{Start: p, End: p}, text)
	if err != nil {
		return Point{}, err
	}
	return res.NewRange.End, nil
}

// Delete removes the text in r.
func (b *Buffer) Delete(r Range) error {
	_, err := b.Replace(r, "")
	return err
}

func (b *Buffer) replace(r Range, text string, record bool) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validate(r); err != nil {
		return EditResult{}, err
	}

	text = normalize(text)
	oldText := b.slice(r)
	prefix := b.lines[r.Start.Line][:r.Start.Column]
	suffix := b.lines[r.End.Line][r.End.Column:]
	inserted := strings.Split(text, "\n")

	replacement := strings.Split(prefix+text+suffix, "\n")
	tail := b.lines[r.End.Line+1:]
	lines := make([]string, 0, r.Start.Line+len(replacement)+len(tail))
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, tail...)
	b.lines = lines
	b.revisionID = NewRevisionID()

	res := EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: endOf(r.Start, inserted)},
		OldText:  oldText,
		NewText:  text,
		Revision: b.revisionID,
	}
	if record {
		b.history.record(res)
	}
	return res, nil
}

// Undo reverts the most recent undo step.
func (b *Buffer) Undo() (EditResult, error) {
	b.mu.Lock()
	e, ok := b.history.popUndo()
	b.mu.Unlock()
	if !ok {
		return EditResult{}, ErrNothingToUndo
	}

	r, text := e.inverse()
	res, err := b.replace(r, text, false)
	if err != nil {
		return EditResult{}, fmt.Errorf("undo %s: %w", e, err)
	}

	b.mu.Lock()
	b.history.redo = append(b.history.redo, e)
	b.mu.Unlock()

	b.notify(res)
	return res, nil
}

// Redo reapplies the most recently undone step.
func (b *Buffer) Redo() (EditResult, error) {
	b.mu.Lock()
	e, ok := b.history.popRedo()
	b.mu.Unlock()
	if !ok {
		return EditResult{}, ErrNothingToRedo
	}

	res, err := b.replace(e.OldRange, e.NewText, false)
	if err != nil {
		return EditResult{}, fmt.Errorf("redo %s: %w", e, err)
	}

	b.mu.Lock()
	b.history.undo = append(b.history.undo, e)
	b.mu.Unlock()

	b.notify(res)
	return res, nil
}

// CanUndo reports whether Undo has anything to revert.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.undo) > 0
}

// CanRedo reports whether Redo has anything to reapply.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.redo) > 0
}

// SetText replaces the whole content and clears the undo history.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	b.lines = splitLines(s)
	b.revisionID = NewRevisionID()
	b.history.clear()
	b.mu.Unlock()
}

// Change notification

// OnChange registers fn to be called after every edit. The returned
// function removes it.
func (b *Buffer) OnChange(fn ChangeFunc) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Buffer) notify(res EditResult) {
	b.mu.RLock()
	ls := append([]listener(nil), b.listeners...)
	b.mu.RUnlock()
	for _, l := range ls {
		l.fn(res)
	}
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsModified reports whether the buffer changed since it was created or
// last marked saved.
func (b *Buffer) IsModified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID != b.saved
}

// MarkSaved records the current revision as saved.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = b.revisionID
}

// IsEmpty returns true if the buffer has no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the line ending used when writing.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// WriteTo writes the content with the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	text := strings.Join(b.lines, b.lineEnding.Sequence())
	b.mu.RUnlock()
	n, err := io.WriteString(w, text)
	return int64(n), err
}
