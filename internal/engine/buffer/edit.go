package buffer

import "fmt"

// EditResult describes an applied edit.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	NewText  string
	Revision RevisionID
}

// String returns a human-readable representation of the edit.
func (e EditResult) String() string {
	switch {
	case e.OldRange.IsEmpty():
		return fmt.Sprintf("Insert(%s, %q)", e.OldRange.Start, e.NewText)
	case e.NewText == "":
		return fmt.Sprintf("Delete%s", e.OldRange)
	default:
		return fmt.Sprintf("Replace%s with %q", e.OldRange, e.NewText)
	}
}

// inverse returns the replacement that undoes e.
func (e EditResult) inverse() (Range, string) {
	return e.NewRange, e.OldText
}

// endOf returns where text ends when inserted at start.
func endOf(start Point, lines []string) Point {
	if len(lines) == 1 {
		return Point{Line: start.Line, Column: start.Column + len(lines[0])}
	}
	return Point{Line: start.Line + len(lines) - 1, Column: len(lines[len(lines)-1])}
}
