// Package interact is the rule-matching interaction engine.
//
// An Engine attaches to a host editor and turns modifier-gated pointer
// gestures into edits of value-shaped text: numbers dragged to change
// magnitude, booleans toggled by click, and so on. Value types are
// described by a rule.Set; the engine itself knows nothing about them.
//
// # Gestures
//
// The engine is a three-state machine:
//
//	Idle      no target
//	Hover     modifier held, target under the pointer
//	Dragging  modifier held, drag in progress on the target
//
// Pointer moves with the modifier held re-run the matcher and retarget.
// Pointer down fires the target rule's OnClick, then starts a drag if the
// rule is drag-capable. While dragging, moves call OnDrag with the
// movement delta instead of retargeting. Releasing the modifier, leaving
// the surface, or moving without the modifier ends any drag and clears
// the target.
//
// # Edits
//
// Rules change text only through Editor.SetText with the handle of the
// target they were called for. The engine replaces the target's range
// in one host Replace call, keeps the start fixed, moves the end to fit
// the new text, and moves the highlight with it. A failed replace is
// logged and leaves the target marked stale; the next move re-matches at
// the target's start before trusting the range again.
//
// # Threading
//
// An Engine is not safe for concurrent use. Drive it from the host's
// event loop: every event handler runs to completion before the next
// event is delivered.
package interact
