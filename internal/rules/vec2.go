package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dshills/scrub/internal/interact/rule"
)

var (
	vec2Pattern = regexp.MustCompile(`vec2\(-?\b\d+\.?\d*\b\s*(,\s*-?\b\d+\.?\d*\b)?\)`)
	vec2Parts   = regexp.MustCompile(`vec2\((?P<x>-?\b\d+\.?\d*\b)\s*(,\s*(?P<y>-?\b\d+\.?\d*\b))?\)`)
)

// Vec2 returns the vec2 dragger. Horizontal movement changes x and
// vertical movement changes y; a one-component vec2(n) is treated as
// vec2(n, n) and written back with both components.
func Vec2() rule.Rule {
	return rule.Rule{
		Name:    NameVec2,
		Pattern: vec2Pattern,
		Cursor:  "move",
		Hooks: rule.Hooks{
			OnDrag: func(ed rule.Editor, c *rule.Call) {
				if c.Event == nil {
					return
				}
				next, ok := NudgeVec2(c.Text, float64(c.Event.Delta.X), float64(c.Event.Delta.Y))
				if !ok || next == c.Text {
					return
				}
				ed.SetText(c.Target, next)
			},
		},
	}
}

// NudgeVec2 adds dx and dy to the components of a vec2 literal.
func NudgeVec2(text string, dx, dy float64) (string, bool) {
	m := vec2Parts.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	x, err := strconv.ParseFloat(m[vec2Parts.SubexpIndex("x")], 64)
	if err != nil {
		return "", false
	}
	y := x
	if ys := m[vec2Parts.SubexpIndex("y")]; ys != "" {
		if y, err = strconv.ParseFloat(ys, 64); err != nil {
			return "", false
		}
	}
	return fmt.Sprintf("vec2(%s, %s)", formatShort(x+dx), formatShort(y+dy)), true
}

func formatShort(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
