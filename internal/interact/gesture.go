package interact

import (
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact/rule"
)

// HandleEvent runs one event through the state machine. Hosts that do not
// use an EventSource may call it directly.
func (e *Engine) HandleEvent(ev Event) Result {
	if !e.attached {
		return Result{}
	}
	e.mods = ev.Mods

	switch ev.Kind {
	case PointerMove:
		return e.pointerMove(ev.Pointer)
	case PointerDown:
		return e.pointerDown(ev.Pointer)
	case PointerUp:
		return e.pointerUp(ev.Pointer)
	case PointerLeave:
		return e.pointerLeave()
	case KeyDown:
		e.keyDown()
	case KeyUp:
		e.keyUp()
	}
	return Result{}
}

func (e *Engine) track(p mouse.Event) {
	e.pointer = p.Position
	e.hasPointer = true
}

func (e *Engine) pointerMove(p mouse.Event) Result {
	e.track(p)

	if !e.held() {
		if e.target != nil {
			e.endDrag(&p)
			e.setTarget(nil)
		}
		return Result{}
	}

	if e.dragging && e.target != nil {
		t := e.target
		if t.stale && !e.revalidate(t) {
			e.endDrag(&p)
			e.setTarget(nil)
			return Result{Consumed: true}
		}
		if t.Rule.CanDrag() {
			e.call("drag", t, t.Rule.Hooks.OnDrag, &p)
		}
		return Result{Consumed: true}
	}

	e.acquire()
	return Result{Consumed: e.target != nil}
}

func (e *Engine) pointerDown(p mouse.Event) Result {
	e.track(p)

	if !e.held() || e.target == nil {
		return Result{}
	}

	t := e.target
	if t.stale && !e.revalidate(t) {
		e.setTarget(nil)
		return Result{Consumed: true}
	}

	if t.Rule.CanClick() {
		e.call("click", t, t.Rule.Hooks.OnClick, &p)
	}
	if t.Rule.CanDrag() && e.target == t {
		e.startDrag(&p)
	}
	return Result{Consumed: true}
}

func (e *Engine) pointerUp(p mouse.Event) Result {
	e.track(p)

	wasDragging := e.dragging
	e.endDrag(&p)

	if !e.held() {
		e.setTarget(nil)
	} else {
		e.acquire()
	}
	return Result{Consumed: wasDragging}
}

func (e *Engine) pointerLeave() Result {
	e.endDrag(nil)
	e.setTarget(nil)
	e.hasPointer = false
	return Result{}
}

func (e *Engine) keyDown() {
	if e.held() && e.target == nil {
		e.acquire()
	}
}

func (e *Engine) keyUp() {
	if !e.held() {
		e.endDrag(nil)
		e.setTarget(nil)
	}
}

func (e *Engine) startDrag(p *mouse.Event) {
	if e.dragging || e.target == nil {
		return
	}
	e.dragging = true

	t := e.target
	if t.Rule.Has(rule.CapDragStart) {
		e.call("drag-start", t, t.Rule.Hooks.OnDragStart, p)
	}
}

// endDrag ends a drag in progress. p is nil when the drag was ended by a
// key or leave event.
func (e *Engine) endDrag(p *mouse.Event) {
	if !e.dragging {
		return
	}
	e.dragging = false

	t := e.target
	if t != nil && t.Rule.Has(rule.CapDragEnd) {
		e.call("drag-end", t, t.Rule.Hooks.OnDragEnd, p)
	}
}

// call invokes a rule hook. Panics in rule code are logged and absorbed
// so a misbehaving rule leaves the gesture inert instead of crashing the
// host's event loop.
func (e *Engine) call(name string, t *target, hook rule.Hook, p *mouse.Event) {
	c := &rule.Call{
		Text:   t.Text,
		Target: t.handle,
		Start:  t.Pos,
	}
	if p != nil {
		ev := *p
		c.Event = &ev
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("rule", t.Rule.Name).Error("%s hook panicked: %v", name, r)
		}
	}()
	hook(e, c)
}
