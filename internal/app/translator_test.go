package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact"
	"github.com/dshills/scrub/internal/renderer/backend"
)

type seen struct {
	Kind   interact.Kind
	X, Y   int
	DX, DY int
	Button mouse.Button
	Mods   key.Modifier
}

func newTestTranslator(consume bool) (*Translator, *[]seen) {
	feed := interact.NewFeed()
	var got []seen
	feed.Subscribe(func(ev interact.Event) interact.Result {
		got = append(got, seen{
			Kind:   ev.Kind,
			X:      ev.Pointer.Position.X,
			Y:      ev.Pointer.Position.Y,
			DX:     ev.Pointer.Delta.X,
			DY:     ev.Pointer.Delta.Y,
			Button: ev.Pointer.Button,
			Mods:   ev.Mods,
		})
		return interact.Result{Consumed: consume}
	})
	// Rows 0-9 are the surface.
	tr := NewTranslator(feed, func(x, y int) bool { return y >= 0 && y < 10 })
	return tr, &got
}

func mouseEv(x, y int, b mouse.Button, mods key.Modifier) backend.Event {
	return backend.Event{Type: backend.EventMouse, MouseX: x, MouseY: y, MouseButton: b, Mod: mods}
}

func TestTranslatorPointerSequence(t *testing.T) {
	tr, got := newTestTranslator(false)

	tr.Mouse(mouseEv(1, 1, mouse.ButtonNone, 0))
	tr.Mouse(mouseEv(3, 1, mouse.ButtonNone, 0))
	tr.Mouse(mouseEv(3, 1, mouse.ButtonLeft, 0))
	tr.Mouse(mouseEv(5, 2, mouse.ButtonLeft, 0))
	tr.Mouse(mouseEv(5, 2, mouse.ButtonNone, 0))

	want := []seen{
		{Kind: interact.PointerMove, X: 1, Y: 1},
		{Kind: interact.PointerMove, X: 3, Y: 1, DX: 2},
		{Kind: interact.PointerDown, X: 3, Y: 1, Button: mouse.ButtonLeft},
		{Kind: interact.PointerMove, X: 5, Y: 2, DX: 2, DY: 1, Button: mouse.ButtonLeft},
		{Kind: interact.PointerUp, X: 5, Y: 2, Button: mouse.ButtonLeft},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslatorSynthesizesModifierKeys(t *testing.T) {
	tr, got := newTestTranslator(false)

	tr.Mouse(mouseEv(1, 1, mouse.ButtonNone, key.ModAlt))
	tr.Mouse(mouseEv(2, 1, mouse.ButtonNone, key.ModAlt))
	tr.Mouse(mouseEv(2, 1, mouse.ButtonNone, key.ModCtrl))

	want := []seen{
		{Kind: interact.KeyDown, X: 1, Y: 1, Mods: key.ModAlt},
		{Kind: interact.PointerMove, X: 1, Y: 1, Mods: key.ModAlt},
		{Kind: interact.PointerMove, X: 2, Y: 1, DX: 1, Mods: key.ModAlt},
		{Kind: interact.KeyUp, X: 2, Y: 1, Mods: 0},
		{Kind: interact.KeyDown, X: 2, Y: 1, Mods: key.ModCtrl},
		{Kind: interact.PointerMove, X: 2, Y: 1, Mods: key.ModCtrl},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if tr.Mods() != key.ModCtrl {
		t.Errorf("Mods() = %v, want Ctrl", tr.Mods())
	}
}

func TestTranslatorKeyReleasesModifier(t *testing.T) {
	tr, got := newTestTranslator(false)

	tr.Mouse(mouseEv(4, 2, mouse.ButtonNone, key.ModAlt))
	*got = nil

	// A chord with the modifier still held changes nothing.
	tr.Key(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x', Mod: key.ModAlt})
	if len(*got) != 0 {
		t.Fatalf("alt chord published %v", *got)
	}

	tr.Key(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'})
	want := []seen{{Kind: interact.KeyUp, X: 4, Y: 2}}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslatorLeave(t *testing.T) {
	tr, got := newTestTranslator(false)

	tr.Mouse(mouseEv(1, 9, mouse.ButtonNone, 0))
	tr.Mouse(mouseEv(1, 10, mouse.ButtonNone, 0)) // status line
	tr.Mouse(mouseEv(2, 11, mouse.ButtonNone, 0)) // still outside
	tr.Mouse(mouseEv(3, 8, mouse.ButtonNone, 0))

	want := []seen{
		{Kind: interact.PointerMove, X: 1, Y: 9},
		{Kind: interact.PointerLeave, X: 1, Y: 10},
		{Kind: interact.PointerMove, X: 3, Y: 8}, // no delta after leaving
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslatorFocusLost(t *testing.T) {
	tr, got := newTestTranslator(false)

	tr.Mouse(mouseEv(1, 1, mouse.ButtonLeft, key.ModAlt))
	*got = nil

	tr.Focus(true)
	if len(*got) != 0 {
		t.Fatalf("focus gained published %v", *got)
	}

	tr.Focus(false)
	want := []seen{
		{Kind: interact.KeyUp, X: 1, Y: 1},
		{Kind: interact.PointerLeave, X: 1, Y: 1},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if tr.Mods() != 0 {
		t.Errorf("Mods() = %v after focus loss", tr.Mods())
	}

	// The button state was reset: the next press is a press.
	*got = nil
	tr.Mouse(mouseEv(1, 1, mouse.ButtonLeft, 0))
	if len(*got) != 1 || (*got)[0].Kind != interact.PointerDown {
		t.Errorf("after focus loss got %v, want one pointer-down", *got)
	}
}

func TestTranslatorWheelIgnored(t *testing.T) {
	tr, got := newTestTranslator(true)

	ev := mouseEv(1, 1, mouse.ButtonNone, 0)
	ev.Wheel = 1
	if res := tr.Mouse(ev); res.Consumed {
		t.Error("wheel event should not be consumed")
	}
	if len(*got) != 0 {
		t.Errorf("wheel published %v", *got)
	}
}

func TestTranslatorConsumed(t *testing.T) {
	tr, _ := newTestTranslator(true)
	if res := tr.Mouse(mouseEv(1, 1, mouse.ButtonNone, 0)); !res.Consumed {
		t.Error("Mouse() should report consumption by a subscriber")
	}
}
