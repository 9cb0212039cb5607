// Package key provides keyboard modifier state for the scrub interaction
// engine.
//
// Modifier is a bitmask of the Shift, Ctrl, Alt and Meta keys as reported
// by the host on every pointer and keyboard event. Selector names the one
// modifier that gates interactive value manipulation:
//
//	sel, err := key.ParseSelector("mod")
//	if err != nil {
//	    return err
//	}
//	if sel.Held(event.Modifiers) {
//	    // interactive affordances are live
//	}
//
// The "mod" selector is platform-normalized: Meta (Cmd) on macOS and iOS,
// Ctrl everywhere else.
package key
