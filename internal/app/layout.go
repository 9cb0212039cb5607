package app

import "github.com/rivo/uniseg"

// glyph is one grapheme cluster of a line laid out in terminal cells.
type glyph struct {
	// start and end are byte offsets into the line.
	start, end int

	// x is the first cell, relative to the start of the line.
	x int

	// width is the number of cells the glyph covers.
	width int

	text string
}

// layoutLine splits line into grapheme clusters and assigns cells. Tabs
// advance to the next multiple of tabWidth; zero-width clusters take one
// cell so every byte stays addressable.
func layoutLine(line string, tabWidth int) (glyphs []glyph, width int) {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	state := -1
	rest := line
	offset := 0
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		switch {
		case cluster == "\t":
			w = tabWidth - width%tabWidth
		case w <= 0:
			w = 1
		}
		glyphs = append(glyphs, glyph{
			start: offset,
			end:   offset + len(cluster),
			x:     width,
			width: w,
			text:  cluster,
		})
		offset += len(cluster)
		width += w
	}
	return glyphs, width
}

// columnAt returns the byte offset of the glyph covering cell x, and
// false when x lies past the end of the line.
func columnAt(glyphs []glyph, x int) (int, bool) {
	if x < 0 {
		return 0, false
	}
	for _, g := range glyphs {
		if x >= g.x && x < g.x+g.width {
			return g.start, true
		}
	}
	return 0, false
}

// cellOf returns the cell where byte column col starts. Columns inside a
// glyph map to the glyph's first cell; the end of the line maps to width.
func cellOf(glyphs []glyph, width, col int) int {
	for _, g := range glyphs {
		if col < g.end {
			return g.x
		}
	}
	return width
}

// prevBoundary and nextBoundary step the caret one glyph.
func prevBoundary(glyphs []glyph, col int) int {
	prev := 0
	for _, g := range glyphs {
		if g.start >= col {
			break
		}
		prev = g.start
	}
	return prev
}

func nextBoundary(glyphs []glyph, col int) int {
	for _, g := range glyphs {
		if g.start >= col {
			return g.end
		}
	}
	if len(glyphs) == 0 {
		return 0
	}
	return glyphs[len(glyphs)-1].end
}
