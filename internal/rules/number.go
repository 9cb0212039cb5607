package rules

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/scrub/internal/interact/rule"
)

var numberPattern = regexp.MustCompile(`-?\b\d+\.?\d*\b`)

// Number returns the number dragger. Horizontal movement changes the
// value by one unit in the last decimal place per cell: 5 moves by 1,
// 5.0 by 0.1. The number of decimals is preserved.
func Number(sensitivity float64) rule.Rule {
	if sensitivity == 0 {
		sensitivity = 1
	}
	return rule.Rule{
		Name:    NameNumber,
		Pattern: numberPattern,
		Cursor:  "ew-resize",
		Hooks: rule.Hooks{
			OnDrag: func(ed rule.Editor, c *rule.Call) {
				if c.Event == nil {
					return
				}
				next, ok := NudgeNumber(c.Text, float64(c.Event.Delta.X)*sensitivity)
				if !ok || next == c.Text {
					return
				}
				ed.SetText(c.Target, next)
			},
		},
	}
}

// NudgeNumber adds steps units of the last decimal place to text.
func NudgeNumber(text string, steps float64) (string, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "", false
	}
	decimals := 0
	if i := strings.IndexByte(text, '.'); i >= 0 {
		decimals = len(text) - i - 1
	}
	v += steps * math.Pow(10, -float64(decimals))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return formatFixed(v, decimals), true
}

// formatFixed formats v with decimals places and never yields "-0".
func formatFixed(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}
