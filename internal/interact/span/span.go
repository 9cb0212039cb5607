// Package span defines the buffer coordinates shared by rules, matches and
// hosts.
package span

import "fmt"

// Position is a row and column in the host buffer. Both are 0-indexed.
// Column is a byte offset into the row's text at the time of the query.
type Position struct {
	Row    int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Offset returns the position n bytes further along the same row.
func (p Position) Offset(n int) Position {
	return Position{Row: p.Row, Column: p.Column + n}
}

// Range is a half-open span [Start, End) in buffer coordinates.
type Range struct {
	Start Position
	End   Position
}

// OnRow returns the single-row range [start, end) on row.
func OnRow(row, start, end int) Range {
	return Range{
		Start: Position{Row: row, Column: start},
		End:   Position{Row: row, Column: end},
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsValid returns true if Start does not come after End.
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// SingleRow returns true if the range starts and ends on the same row.
func (r Range) SingleRow() bool {
	return r.Start.Row == r.End.Row
}

// Len returns the byte length of a single-row range, or -1 otherwise.
func (r Range) Len() int {
	if !r.SingleRow() {
		return -1
	}
	return r.End.Column - r.Start.Column
}

// ContainsLine returns true if row falls within the range.
func (r Range) ContainsLine(row int) bool {
	return row >= r.Start.Row && row <= r.End.Row
}
