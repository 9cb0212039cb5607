// Package match finds the rule match under a buffer column.
//
// Find is pure: it reads only the line it is given, so callers must query
// again after the buffer changes.
package match

import (
	"github.com/dshills/scrub/internal/interact/rule"
	"github.com/dshills/scrub/internal/interact/span"
)

// Match is one occurrence of a rule's pattern in a line.
type Match struct {
	// Rule is the rule that produced the match.
	Rule *rule.Entry

	// Pos is where the match starts.
	Pos span.Position

	// Text is the matched substring.
	Text string

	// Range is the match's span in buffer coordinates.
	Range span.Range
}

// Equal returns true if both matches cover the same text for the same rule.
func (m *Match) Equal(other *Match) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Rule == other.Rule && m.Range == other.Range && m.Text == other.Text
}

// Find returns the best match at column on the given row, or nil.
//
// A candidate is eligible when start <= column <= end, so the columns on
// both edges of a match count as inside. The shortest eligible text wins;
// equal lengths go to the rule registered first, then to the leftmost
// candidate of that rule.
func Find(set *rule.Set, line string, row, column int) *Match {
	var best *Match
	for _, e := range set.Entries() {
		for _, loc := range e.Pattern.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			if start == end {
				continue
			}
			if column < start || column > end {
				continue
			}
			if best != nil && end-start >= len(best.Text) {
				continue
			}
			best = &Match{
				Rule:  e,
				Pos:   span.Position{Row: row, Column: start},
				Text:  line[start:end],
				Range: span.OnRow(row, start, end),
			}
		}
	}
	return best
}

// FindAll returns every non-empty match of every rule on the line, ordered
// by start column and then by rule priority.
func FindAll(set *rule.Set, line string, row int) []Match {
	var out []Match
	for _, e := range set.Entries() {
		for _, loc := range e.Pattern.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			out = append(out, Match{
				Rule:  e,
				Pos:   span.Position{Row: row, Column: loc[0]},
				Text:  line[loc[0]:loc[1]],
				Range: span.OnRow(row, loc[0], loc[1]),
			})
		}
	}
	sortMatches(out)
	return out
}

func sortMatches(ms []Match) {
	// insertion sort keeps equal starts in rule order; lines are short
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && less(ms[j], ms[j-1]); j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

func less(a, b Match) bool {
	if a.Pos.Column != b.Pos.Column {
		return a.Pos.Column < b.Pos.Column
	}
	return a.Rule.Index < b.Rule.Index
}
