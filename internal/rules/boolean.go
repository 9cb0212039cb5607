package rules

import (
	"regexp"

	"github.com/dshills/scrub/internal/interact/rule"
)

var booleanPattern = regexp.MustCompile(`true|false`)

// Boolean returns the boolean toggler.
func Boolean() rule.Rule {
	return rule.Rule{
		Name:    NameBoolean,
		Pattern: booleanPattern,
		Cursor:  "pointer",
		Hooks: rule.Hooks{
			OnClick: func(ed rule.Editor, c *rule.Call) {
				switch c.Text {
				case "true":
					ed.SetText(c.Target, "false")
				case "false":
					ed.SetText(c.Target, "true")
				}
			},
		},
	}
}
