package key

import (
	"fmt"
	"runtime"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// Selector names the modifier key that gates interaction.
type Selector uint8

const (
	// SelectAlt gates on Alt (Option on macOS).
	SelectAlt Selector = iota
	// SelectShift gates on Shift.
	SelectShift
	// SelectCtrl gates on Control.
	SelectCtrl
	// SelectMeta gates on Meta (Cmd, Win, Super).
	SelectMeta
	// SelectMod gates on Meta on Apple platforms and Ctrl elsewhere.
	SelectMod
)

// selectorNames maps configuration names to selectors.
var selectorNames = map[string]Selector{
	"alt":    SelectAlt,
	"option": SelectAlt,
	"shift":  SelectShift,
	"ctrl":   SelectCtrl,
	"meta":   SelectMeta,
	"cmd":    SelectMeta,
	"super":  SelectMeta,
	"mod":    SelectMod,
}

// ParseSelector parses a selector name (case-insensitive).
func ParseSelector(name string) (Selector, error) {
	s, ok := selectorNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return SelectAlt, fmt.Errorf("unknown modifier key %q (want alt, shift, ctrl, meta or mod)", name)
	}
	return s, nil
}

// String returns the canonical configuration name.
func (s Selector) String() string {
	switch s {
	case SelectAlt:
		return "alt"
	case SelectShift:
		return "shift"
	case SelectCtrl:
		return "ctrl"
	case SelectMeta:
		return "meta"
	case SelectMod:
		return "mod"
	default:
		return "unknown"
	}
}

// platform is the GOOS used to normalize SelectMod. Tests override it.
var platform = runtime.GOOS

// Resolve returns the physical modifier the selector stands for on goos.
func (s Selector) Resolve(goos string) Modifier {
	switch s {
	case SelectAlt:
		return ModAlt
	case SelectShift:
		return ModShift
	case SelectCtrl:
		return ModCtrl
	case SelectMeta:
		return ModMeta
	case SelectMod:
		if goos == "darwin" || goos == "ios" {
			return ModMeta
		}
		return ModCtrl
	default:
		return ModNone
	}
}

// Modifier returns the physical modifier for the running platform.
func (s Selector) Modifier() Modifier {
	return s.Resolve(platform)
}

// Held reports whether the selected modifier is down in m.
func (s Selector) Held(m Modifier) bool {
	mod := s.Modifier()
	return mod != ModNone && m.Has(mod)
}
