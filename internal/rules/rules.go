// Package rules provides the built-in value rules: numbers, booleans,
// vec2 literals, colors and URLs.
package rules

import (
	"fmt"

	"github.com/dshills/scrub/internal/interact/rule"
	"github.com/dshills/scrub/internal/interact/span"
)

// Built-in rule names, in default priority order.
const (
	NameNumber  = "number"
	NameBoolean = "boolean"
	NameVec2    = "vec2"
	NameColor   = "color"
	NameURL     = "url"
)

// Names lists the built-in rules in default order.
var Names = []string{NameNumber, NameBoolean, NameVec2, NameColor, NameURL}

// PickerRequest describes a popup color picker session.
type PickerRequest struct {
	// Anchor is the buffer position the popup attaches to.
	Anchor span.Position

	// Initial is the starting color as #rrggbb.
	Initial string

	// OnChange receives each color the user picks, as #rrggbb.
	OnChange func(hex string)

	// OnClose is called once when the popup goes away.
	OnClose func()
}

// Picker opens popup color pickers. Opening a picker closes any picker
// that is already open.
type Picker interface {
	Open(req PickerRequest) (close func())
}

// Opener opens URLs outside the editor.
type Opener interface {
	Open(url string) error
}

// Options configures the built-in rules.
type Options struct {
	// Sensitivity scales pointer movement for number drags. Zero means 1.
	Sensitivity float64

	// Picker is used by the color rule. Without one the rule is not
	// clickable.
	Picker Picker

	// Opener is used by the url rule. Without one the rule is not
	// clickable.
	Opener Opener

	// OnError receives errors from external collaborators.
	OnError func(error)
}

// Builtin returns the named built-in rule.
func Builtin(name string, opts Options) (rule.Rule, error) {
	switch name {
	case NameNumber:
		return Number(opts.Sensitivity), nil
	case NameBoolean:
		return Boolean(), nil
	case NameVec2:
		return Vec2(), nil
	case NameColor:
		return Color(opts.Picker), nil
	case NameURL:
		return URL(opts.Opener, opts.OnError), nil
	default:
		return rule.Rule{}, fmt.Errorf("unknown built-in rule %q", name)
	}
}

// Select returns the named built-in rules in the given order.
func Select(names []string, opts Options) ([]rule.Rule, error) {
	out := make([]rule.Rule, 0, len(names))
	for _, name := range names {
		r, err := Builtin(name, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Defaults returns every built-in rule in default order.
func Defaults(opts Options) []rule.Rule {
	out, _ := Select(Names, opts)
	return out
}
