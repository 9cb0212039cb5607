// Package overlay keeps the styled marks drawn on top of buffer text,
// such as the highlight over a value under the pointer.
package overlay

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrub/internal/engine/buffer"
)

// Priority represents the rendering priority of marks.
// Higher priority marks are drawn on top.
type Priority uint8

const (
	PriorityLow      Priority = 50
	PriorityNormal   Priority = 100
	PriorityHigh     Priority = 150
	PriorityCritical Priority = 200
)

// Mark is a styled buffer range.
type Mark struct {
	ID       string
	Range    buffer.Range
	Tag      string
	Priority Priority
}

// ContainsLine returns true if the mark touches line.
func (m Mark) ContainsLine(line int) bool {
	return line >= m.Range.Start.Line && line <= m.Range.End.Line
}

// Span is the part of a mark that falls on one line.
type Span struct {
	// StartCol is the starting byte column.
	StartCol int

	// EndCol is the ending byte column (exclusive).
	EndCol int

	Tag      string
	Priority Priority
}

// Contains returns true if col falls inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.StartCol && col < s.EndCol
}

// Theme maps tag words to styles.
type Theme struct {
	styles   map[string]tcell.Style
	fallback tcell.Style
}

// NewTheme creates a theme whose unknown tags use fallback.
func NewTheme(fallback tcell.Style) *Theme {
	return &Theme{styles: make(map[string]tcell.Style), fallback: fallback}
}

// DefaultTheme returns the built-in styles for interaction marks.
func DefaultTheme() *Theme {
	t := NewTheme(tcell.StyleDefault.Reverse(true))
	t.Set("scrub", tcell.StyleDefault.Underline(true).Bold(true))
	t.Set("url", tcell.StyleDefault.Underline(true).Foreground(tcell.ColorDodgerBlue))
	return t
}

// Set assigns the style for a tag word.
func (t *Theme) Set(word string, style tcell.Style) {
	t.styles[word] = style
}

// Style resolves a space separated tag. The full tag wins, then its
// words from last to first, then the fallback.
func (t *Theme) Style(tag string) tcell.Style {
	if s, ok := t.styles[tag]; ok {
		return s
	}
	words := strings.Fields(tag)
	for i := len(words) - 1; i >= 0; i-- {
		if s, ok := t.styles[words[i]]; ok {
			return s
		}
	}
	return t.fallback
}
