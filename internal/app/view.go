package app

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrub/internal/engine/buffer"
	"github.com/dshills/scrub/internal/interact"
	"github.com/dshills/scrub/internal/interact/highlight"
	"github.com/dshills/scrub/internal/interact/span"
	"github.com/dshills/scrub/internal/renderer/backend"
	"github.com/dshills/scrub/internal/renderer/overlay"
)

// Styles used by the view.
var (
	styleText   = tcell.StyleDefault
	styleGutter = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// View is the terminal editing surface for one document. It implements
// interact.Host: screen cells map to byte columns through grapheme
// layout, replaces go through the document buffer and markers are
// overlay marks.
//
// A View is not safe for concurrent use; it belongs to the event loop.
type View struct {
	doc      *Document
	overlays *overlay.Manager
	feed     *interact.Feed

	width, height int

	// top is the first visible row; left the first visible cell.
	top, left int

	caret buffer.Point

	// hostEdit is set while Replace applies an engine edit.
	hostEdit bool

	pointer string
	message string
	status  string
}

// NewView creates a view of doc. feed is the surface event source; a
// nil feed leaves the view without a surface.
func NewView(doc *Document, feed *interact.Feed, theme *overlay.Theme) *View {
	if theme == nil {
		theme = overlay.DefaultTheme()
	}
	return &View{
		doc:      doc,
		overlays: overlay.NewManager(theme),
		feed:     feed,
	}
}

// Document returns the document shown in the view.
func (v *View) Document() *Document { return v.doc }

// Resize sets the terminal size.
func (v *View) Resize(width, height int) {
	v.width, v.height = width, height
	v.ensureCaretVisible()
}

// textHeight is the number of rows available for text.
func (v *View) textHeight() int {
	if v.height <= 1 {
		return 0
	}
	return v.height - 1
}

// gutterWidth is the width of the line number column.
func (v *View) gutterWidth() int {
	return len(strconv.Itoa(v.doc.Buffer.LineCount())) + 1
}

// InTextArea reports whether screen point x, y is over the text rows,
// gutter included.
func (v *View) InTextArea(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.textHeight()
}

func (v *View) layout(row int) ([]glyph, int, string, bool) {
	line, ok := v.doc.Buffer.LineText(row)
	if !ok {
		return nil, 0, "", false
	}
	glyphs, w := layoutLine(line, v.doc.Buffer.TabWidth())
	return glyphs, w, line, true
}

// ScreenToBuffer converts screen coordinates to a buffer position.
func (v *View) ScreenToBuffer(x, y int) (span.Position, bool) {
	if !v.InTextArea(x, y) || x < v.gutterWidth() {
		return span.Position{}, false
	}
	row := v.top + y
	glyphs, _, _, ok := v.layout(row)
	if !ok {
		return span.Position{}, false
	}
	col, ok := columnAt(glyphs, x-v.gutterWidth()+v.left)
	if !ok {
		return span.Position{}, false
	}
	return span.Position{Row: row, Column: col}, true
}

// BufferToScreen converts a buffer position to screen coordinates.
func (v *View) BufferToScreen(pos span.Position) (int, int, bool) {
	y := pos.Row - v.top
	if y < 0 || y >= v.textHeight() {
		return 0, 0, false
	}
	glyphs, w, line, ok := v.layout(pos.Row)
	if !ok || pos.Column < 0 || pos.Column > len(line) {
		return 0, 0, false
	}
	x := v.gutterWidth() + cellOf(glyphs, w, pos.Column) - v.left
	if x < v.gutterWidth() || x >= v.width {
		return 0, 0, false
	}
	return x, y, true
}

// LineText returns the text of row.
func (v *View) LineText(row int) (string, bool) {
	return v.doc.Buffer.LineText(row)
}

// Replace replaces r with text as one buffer edit.
func (v *View) Replace(r span.Range, text string) error {
	v.hostEdit = true
	defer func() { v.hostEdit = false }()
	if _, err := v.doc.Buffer.Replace(toBufferRange(r), text); err != nil {
		return fmt.Errorf("replacing %s: %w", r, err)
	}
	v.caret = v.doc.Buffer.ClampPoint(v.caret)
	return nil
}

// OnOutsideEdit registers fn for buffer edits that did not come through
// Replace, such as typing and undo. The returned function removes it.
func (v *View) OnOutsideEdit(fn func(buffer.EditResult)) (remove func()) {
	return v.doc.Buffer.OnChange(func(res buffer.EditResult) {
		if !v.hostEdit {
			fn(res)
		}
	})
}

// AddMarker highlights r.
func (v *View) AddMarker(r span.Range, tag string) (highlight.MarkerID, error) {
	br := toBufferRange(r)
	if _, err := v.doc.Buffer.TextRange(br); err != nil {
		return "", fmt.Errorf("marker %s: %w", r, err)
	}
	return highlight.MarkerID(v.overlays.Add(br, tag, overlay.PriorityHigh)), nil
}

// RemoveMarker removes a marker.
func (v *View) RemoveMarker(id highlight.MarkerID) {
	v.overlays.Remove(string(id))
}

// SetPointerCursor records the cursor hint. Terminals cannot change the
// pointer shape, so the hint is shown in the status line.
func (v *View) SetPointerCursor(hint string) {
	v.pointer = hint
}

// PointerCursor returns the current cursor hint.
func (v *View) PointerCursor() string { return v.pointer }

// Surface returns the view's input feed.
func (v *View) Surface() (interact.EventSource, error) {
	if v.feed == nil {
		return nil, interact.ErrNoSurface
	}
	return v.feed, nil
}

// Overlays returns the view's mark store.
func (v *View) Overlays() *overlay.Manager { return v.overlays }

func toBufferRange(r span.Range) buffer.Range {
	return buffer.Range{
		Start: buffer.Point{Line: r.Start.Row, Column: r.Start.Column},
		End:   buffer.Point{Line: r.End.Row, Column: r.End.Column},
	}
}

// SetMessage sets the transient status message.
func (v *View) SetMessage(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
}

// Message returns the status message.
func (v *View) Message() string { return v.message }

// SetStatus sets the persistent right side of the status line.
func (v *View) SetStatus(s string) { v.status = s }

// Caret returns the caret position.
func (v *View) Caret() buffer.Point { return v.caret }

// SetCaret moves the caret, clamped to the buffer.
func (v *View) SetCaret(p buffer.Point) {
	v.caret = v.doc.Buffer.ClampPoint(p)
	v.ensureCaretVisible()
}

// PlaceCaret moves the caret to the glyph under a screen point. Points
// past the end of a line land at its end.
func (v *View) PlaceCaret(x, y int) {
	if !v.InTextArea(x, y) {
		return
	}
	row := v.top + y
	if n := v.doc.Buffer.LineCount(); row >= n {
		row = n - 1
	}
	glyphs, _, line, _ := v.layout(row)
	col, ok := columnAt(glyphs, x-v.gutterWidth()+v.left)
	if !ok {
		col = len(line)
		if x < v.gutterWidth() {
			col = 0
		}
	}
	v.SetCaret(buffer.Point{Line: row, Column: col})
}

// MoveCaret moves the caret dx glyphs and dy rows.
func (v *View) MoveCaret(dx, dy int) {
	p := v.caret
	if dy != 0 {
		glyphs, w, _, _ := v.layout(p.Line)
		cell := cellOf(glyphs, w, p.Column)
		p.Line += dy
		if p.Line < 0 {
			p.Line = 0
		}
		if n := v.doc.Buffer.LineCount(); p.Line >= n {
			p.Line = n - 1
		}
		glyphs, _, line, _ := v.layout(p.Line)
		col, ok := columnAt(glyphs, cell)
		if !ok {
			col = len(line)
		}
		p.Column = col
	}
	for ; dx < 0; dx++ {
		if p.Column == 0 {
			if p.Line == 0 {
				break
			}
			p.Line--
			p.Column = v.doc.Buffer.LineLen(p.Line)
			continue
		}
		glyphs, _, _, _ := v.layout(p.Line)
		p.Column = prevBoundary(glyphs, p.Column)
	}
	for ; dx > 0; dx-- {
		if p.Column >= v.doc.Buffer.LineLen(p.Line) {
			if p.Line+1 >= v.doc.Buffer.LineCount() {
				break
			}
			p.Line++
			p.Column = 0
			continue
		}
		glyphs, _, _, _ := v.layout(p.Line)
		p.Column = nextBoundary(glyphs, p.Column)
	}
	v.SetCaret(p)
}

// Home and End move the caret to the ends of its line.
func (v *View) Home() { v.SetCaret(buffer.Point{Line: v.caret.Line}) }

func (v *View) End() {
	v.SetCaret(buffer.Point{Line: v.caret.Line, Column: v.doc.Buffer.LineLen(v.caret.Line)})
}

// PageMove moves the caret by n screens.
func (v *View) PageMove(n int) {
	v.MoveCaret(0, n*max(v.textHeight()-1, 1))
}

// Scroll moves the first visible row by n without moving the caret.
func (v *View) Scroll(n int) {
	v.top += n
	if last := v.doc.Buffer.LineCount() - 1; v.top > last {
		v.top = last
	}
	if v.top < 0 {
		v.top = 0
	}
}

// Top returns the first visible row.
func (v *View) Top() int { return v.top }

// InsertText inserts s at the caret.
func (v *View) InsertText(s string) error {
	end, err := v.doc.Buffer.Insert(v.caret, s)
	if err != nil {
		return err
	}
	v.SetCaret(end)
	return nil
}

// Backspace deletes the glyph before the caret, joining lines at column 0.
func (v *View) Backspace() error {
	end := v.caret
	v.MoveCaret(-1, 0)
	if v.caret == end {
		return nil
	}
	return v.doc.Buffer.Delete(buffer.Range{Start: v.caret, End: end})
}

// DeleteForward deletes the glyph after the caret.
func (v *View) DeleteForward() error {
	start := v.caret
	v.MoveCaret(1, 0)
	end := v.caret
	v.caret = start
	if start == end {
		return nil
	}
	return v.doc.Buffer.Delete(buffer.Range{Start: start, End: end})
}

func (v *View) ensureCaretVisible() {
	if h := v.textHeight(); h > 0 {
		if v.caret.Line < v.top {
			v.top = v.caret.Line
		} else if v.caret.Line >= v.top+h {
			v.top = v.caret.Line - h + 1
		}
	}
	textWidth := v.width - v.gutterWidth()
	if textWidth <= 0 {
		return
	}
	glyphs, w, _, _ := v.layout(v.caret.Line)
	cell := cellOf(glyphs, w, v.caret.Column)
	if cell < v.left {
		v.left = cell
	} else if cell >= v.left+textWidth {
		v.left = cell - textWidth + 1
	}
}

// Draw renders the text, marks, gutter and status line.
func (v *View) Draw(b backend.Backend) {
	b.Clear()
	gutter := v.gutterWidth()
	theme := v.overlays.Theme()

	for y := 0; y < v.textHeight(); y++ {
		row := v.top + y
		glyphs, _, line, ok := v.layout(row)
		if !ok {
			drawString(b, 0, y, gutter, "~", styleGutter)
			continue
		}
		num := strconv.Itoa(row + 1)
		drawString(b, gutter-1-len(num), y, len(num), num, styleGutter)

		spans := v.overlays.SpansForLine(row, len(line))
		for _, g := range glyphs {
			x := gutter + g.x - v.left
			if x+g.width <= gutter {
				continue
			}
			if x >= v.width {
				break
			}
			style := styleText
			for _, s := range spans {
				if s.Contains(g.start) {
					style = theme.Style(s.Tag)
				}
			}
			drawGlyph(b, x, y, g, style, gutter, v.width)
		}
	}

	v.drawStatus(b)

	if x, y, ok := v.BufferToScreen(span.Position{Row: v.caret.Line, Column: v.caret.Column}); ok {
		b.ShowCursor(x, y)
	} else {
		b.HideCursor()
	}
}

func (v *View) drawStatus(b backend.Backend) {
	if v.height <= 0 {
		return
	}
	y := v.height - 1
	for x := 0; x < v.width; x++ {
		b.SetContent(x, y, ' ', nil, styleStatus)
	}

	left := " " + v.doc.Name
	if v.doc.IsModified() {
		left += " [+]"
	}
	left += fmt.Sprintf("  %d:%d", v.caret.Line+1, v.caret.Column+1)
	if v.pointer != "" {
		left += "  <" + v.pointer + ">"
	}
	if v.message != "" {
		left += "  " + v.message
	}
	drawString(b, 0, y, v.width, left, styleStatus)

	if v.status != "" {
		right := v.status + " "
		if x := v.width - len(right); x > len(left) {
			drawString(b, x, y, len(right), right, styleStatus)
		}
	}
}

// drawString draws s from x, clipped to limit cells.
func drawString(b backend.Backend, x, y, limit int, s string, style tcell.Style) {
	glyphs, _ := layoutLine(s, 1)
	for _, g := range glyphs {
		if g.x+g.width > limit {
			return
		}
		drawGlyph(b, x+g.x, y, g, style, 0, x+limit)
	}
}

// drawGlyph draws g at x, keeping it within [minX, maxX).
func drawGlyph(b backend.Backend, x, y int, g glyph, style tcell.Style, minX, maxX int) {
	if g.text == "\t" {
		for i := 0; i < g.width; i++ {
			if cx := x + i; cx >= minX && cx < maxX {
				b.SetContent(cx, y, ' ', nil, style)
			}
		}
		return
	}
	if x < minX || x+g.width > maxX {
		// Partially visible wide glyph.
		for i := 0; i < g.width; i++ {
			if cx := x + i; cx >= minX && cx < maxX {
				b.SetContent(cx, y, ' ', nil, style)
			}
		}
		return
	}
	runes := []rune(g.text)
	b.SetContent(x, y, runes[0], runes[1:], style)
}
