// Package mouse provides pointer input types for the scrub interaction
// engine.
//
// Event carries the screen position of a pointer event, the button
// involved, the keyboard modifiers held at the time, and the movement
// delta since the previous move. Hosts that only report absolute
// positions (terminals) fill the delta with a Tracker:
//
//	var tr mouse.Tracker
//	ev = tr.Observe(ev)
//	fmt.Println(ev.Delta.X, ev.Delta.Y)
//
// A Leave action resets the tracker so the first move after the pointer
// re-enters the surface reports a zero delta.
package mouse
