// Package rule defines the declarative description of one interactive
// value type.
//
// A Rule pairs a single-line pattern with optional click and drag hooks.
// Rules are plain data: adding a new value type never requires changes to
// the interaction engine.
//
//	r := rule.Rule{
//	    Name:    "boolean",
//	    Pattern: regexp.MustCompile(`true|false`),
//	    Cursor:  "pointer",
//	    Hooks: rule.Hooks{
//	        OnClick: func(ed rule.Editor, c *rule.Call) {
//	            if c.Text == "true" {
//	                ed.SetText(c.Target, "false")
//	            } else {
//	                ed.SetText(c.Target, "true")
//	            }
//	        },
//	    },
//	}
//
// A Set is the ordered collection handed to the engine. NewSet validates
// each rule and computes its capabilities once, so the engine asks
// Entry.CanDrag instead of probing hooks on every event. Order matters
// only as a tie-break between equally specific matches.
package rule
