package app

import (
	"time"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact"
	"github.com/dshills/scrub/internal/renderer/backend"
)

// Translator turns terminal events into interaction events.
//
// Terminals report modifiers only alongside other input, so key-down and
// key-up events are synthesized whenever the modifier state carried by a
// mouse or key event differs from the last one seen. Button state is
// likewise reported as a mask; presses and releases are derived from
// changes in it.
type Translator struct {
	feed   *interact.Feed
	inArea func(x, y int) bool
	now    func() time.Time

	tracker mouse.Tracker
	mods    key.Modifier
	button  mouse.Button
	inside  bool
}

// NewTranslator publishes into feed. inArea reports whether a screen
// point belongs to the editable surface.
func NewTranslator(feed *interact.Feed, inArea func(x, y int) bool) *Translator {
	return &Translator{feed: feed, inArea: inArea, now: time.Now}
}

// Mouse translates a mouse event. The result is consumed if any published
// event was.
func (t *Translator) Mouse(ev backend.Event) interact.Result {
	var res interact.Result
	merge := func(r interact.Result) {
		res.Consumed = res.Consumed || r.Consumed
	}

	pos := mouse.Position{X: ev.MouseX, Y: ev.MouseY}
	inside := t.inArea(ev.MouseX, ev.MouseY)

	merge(t.syncMods(ev.Mod, pos))

	if !inside {
		if t.inside {
			merge(t.leave(pos))
		}
		t.button = ev.MouseButton
		return res
	}
	t.inside = true

	action := mouse.ActionMove
	button := ev.MouseButton
	switch {
	case ev.Wheel != 0:
		return res
	case ev.MouseButton != mouse.ButtonNone && t.button == mouse.ButtonNone:
		action = mouse.ActionPress
	case ev.MouseButton == mouse.ButtonNone && t.button != mouse.ButtonNone:
		action = mouse.ActionRelease
		button = t.button
	}
	t.button = ev.MouseButton

	pe := t.tracker.Observe(mouse.Event{
		Position:  pos,
		Button:    button,
		Modifiers: t.mods,
		Action:    action,
		Timestamp: t.now(),
	})
	kind := interact.PointerMove
	switch action {
	case mouse.ActionPress:
		kind = interact.PointerDown
	case mouse.ActionRelease:
		kind = interact.PointerUp
	}
	merge(t.feed.Publish(interact.Event{Kind: kind, Pointer: pe, Mods: t.mods}))
	return res
}

// Key syncs the modifier state from a key event. Only releases are
// taken from key events: a chord like alt+x is not a hover request.
func (t *Translator) Key(ev backend.Event) interact.Result {
	released := t.mods &^ ev.Mod
	if released == 0 {
		return interact.Result{}
	}
	t.mods &^= released
	return t.feed.Publish(interact.Event{Kind: interact.KeyUp, Mods: t.mods, Pointer: t.lastPointer()})
}

// Focus handles focus changes. Losing focus releases every modifier and
// leaves the surface.
func (t *Translator) Focus(focused bool) interact.Result {
	if focused {
		return interact.Result{}
	}
	var res interact.Result
	if t.mods != 0 {
		t.mods = 0
		res = t.feed.Publish(interact.Event{Kind: interact.KeyUp, Pointer: t.lastPointer()})
	}
	if t.inside {
		last, _ := t.tracker.Last()
		if t.leave(last).Consumed {
			res.Consumed = true
		}
	}
	t.button = mouse.ButtonNone
	return res
}

// Mods returns the last known modifier state.
func (t *Translator) Mods() key.Modifier { return t.mods }

func (t *Translator) syncMods(next key.Modifier, pos mouse.Position) interact.Result {
	var res interact.Result
	pointer := mouse.Event{Position: pos, Timestamp: t.now()}
	if released := t.mods &^ next; released != 0 {
		t.mods &^= released
		pointer.Modifiers = t.mods
		if t.feed.Publish(interact.Event{Kind: interact.KeyUp, Pointer: pointer, Mods: t.mods}).Consumed {
			res.Consumed = true
		}
	}
	if pressed := next &^ t.mods; pressed != 0 {
		t.mods |= pressed
		pointer.Modifiers = t.mods
		if t.feed.Publish(interact.Event{Kind: interact.KeyDown, Pointer: pointer, Mods: t.mods}).Consumed {
			res.Consumed = true
		}
	}
	return res
}

func (t *Translator) leave(pos mouse.Position) interact.Result {
	t.inside = false
	pe := t.tracker.Observe(mouse.Event{
		Position:  pos,
		Modifiers: t.mods,
		Action:    mouse.ActionLeave,
		Timestamp: t.now(),
	})
	return t.feed.Publish(interact.Event{Kind: interact.PointerLeave, Pointer: pe, Mods: t.mods})
}

func (t *Translator) lastPointer() mouse.Event {
	last, _ := t.tracker.Last()
	return mouse.Event{Position: last, Modifiers: t.mods, Timestamp: t.now()}
}
