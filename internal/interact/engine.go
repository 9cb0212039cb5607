package interact

import (
	"strings"

	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/interact/highlight"
	"github.com/dshills/scrub/internal/interact/match"
	"github.com/dshills/scrub/internal/interact/rule"
	"github.com/dshills/scrub/internal/logging"
)

// State is the gesture state of an Engine.
type State uint8

const (
	// StateIdle means there is no target.
	StateIdle State = iota
	// StateHover means a target is under the pointer.
	StateHover
	// StateDragging means a drag is in progress on the target.
	StateDragging
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHover:
		return "hover"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// target is the engine's live match.
type target struct {
	match.Match
	handle rule.Handle

	// stale is set when a replace failed or the host edited the buffer,
	// so Range may no longer describe it.
	stale bool
}

// pin keeps a target writable after it stops being current.
type pin struct {
	t    *target
	refs int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithModifier sets the modifier key that gates interaction.
func WithModifier(sel key.Selector) Option {
	return func(e *Engine) {
		e.selector = sel
	}
}

// Engine is the gesture state machine attached to one host editor.
type Engine struct {
	host      Host
	rules     *rule.Set
	selector  key.Selector
	log       *logging.Logger
	highlight *highlight.Manager

	sub      Subscription
	attached bool

	target     *target
	dragging   bool
	pointer    mouse.Position
	hasPointer bool
	mods       key.Modifier

	lastHandle rule.Handle
	pinned     map[rule.Handle]*pin
}

// Attach creates an engine for host and subscribes it to the host's
// editable surface. If the surface is missing the engine is returned
// detached and inert; only a nil host or an empty rule set is an error.
func Attach(host Host, rules *rule.Set, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, ErrNoHost
	}
	if rules.Len() == 0 {
		return nil, ErrNoRules
	}

	e := &Engine{
		host:     host,
		rules:    rules,
		selector: key.SelectAlt,
		log:      logging.Null,
		pinned:   make(map[rule.Handle]*pin),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("interact")
	e.highlight = highlight.NewManager(host, e.log)

	src, err := host.Surface()
	if err == nil && src == nil {
		err = ErrNoSurface
	}
	if err != nil {
		e.log.Warn("interaction disabled: %v", err)
		return e, nil
	}

	e.sub = src.Subscribe(e.HandleEvent)
	e.attached = true
	e.log.Debug("attached with %d rules, modifier %s", rules.Len(), e.selector)
	return e, nil
}

// Detach unsubscribes from the host, ends any drag, and removes the
// highlight and cursor override. It is safe to call more than once.
func (e *Engine) Detach() {
	if e.sub != nil {
		e.sub.Unsubscribe()
		e.sub = nil
	}
	e.endDrag(nil)
	e.setTarget(nil)
	e.highlight.Clear()
	e.pinned = make(map[rule.Handle]*pin)
	e.hasPointer = false
	if e.attached {
		e.log.Debug("detached")
	}
	e.attached = false
}

// Attached reports whether the engine is receiving events.
func (e *Engine) Attached() bool {
	return e.attached
}

// State returns the current gesture state.
func (e *Engine) State() State {
	switch {
	case e.target == nil:
		return StateIdle
	case e.dragging:
		return StateDragging
	default:
		return StateHover
	}
}

// Target returns a copy of the current target and its handle.
func (e *Engine) Target() (match.Match, rule.Handle, bool) {
	if e.target == nil {
		return match.Match{}, 0, false
	}
	return e.target.Match, e.target.handle, true
}

// Modifier returns the gating modifier selector.
func (e *Engine) Modifier() key.Selector {
	return e.selector
}

// Rules returns the active rule set.
func (e *Engine) Rules() *rule.Set {
	return e.rules
}

// MarkerCount returns the number of highlight markers the engine owns.
func (e *Engine) MarkerCount() int {
	return e.highlight.Count()
}

// SetRules replaces the rule set. Any drag is ended and the target is
// re-acquired against the new rules.
func (e *Engine) SetRules(rules *rule.Set) error {
	if rules.Len() == 0 {
		return ErrNoRules
	}
	e.endDrag(nil)
	e.setTarget(nil)
	e.pinned = make(map[rule.Handle]*pin)
	e.rules = rules
	if e.held() {
		e.acquire()
	}
	e.log.Info("rule set replaced (%d rules)", rules.Len())
	return nil
}

// SetModifier changes the gating modifier. Any gesture in progress ends.
func (e *Engine) SetModifier(sel key.Selector) {
	if sel == e.selector {
		return
	}
	e.endDrag(nil)
	e.setTarget(nil)
	e.selector = sel
}

func (e *Engine) held() bool {
	return e.selector.Held(e.mods)
}

// find runs the matcher at the last known pointer position.
func (e *Engine) find() *match.Match {
	if !e.hasPointer {
		return nil
	}
	pos, ok := e.host.ScreenToBuffer(e.pointer.X, e.pointer.Y)
	if !ok {
		return nil
	}
	line, ok := e.host.LineText(pos.Row)
	if !ok {
		return nil
	}
	return match.Find(e.rules, line, pos.Row, pos.Column)
}

// acquire retargets to whatever is under the pointer. An unchanged match
// keeps its handle.
func (e *Engine) acquire() {
	m := e.find()
	if m != nil && e.target != nil && !e.target.stale && m.Equal(&e.target.Match) {
		return
	}
	e.setTarget(m)
}

// setTarget replaces the current target and resyncs the highlight.
func (e *Engine) setTarget(m *match.Match) {
	if e.dragging {
		e.endDrag(nil)
	}
	if m == nil {
		e.target = nil
		_ = e.highlight.Set(nil)
		return
	}

	e.lastHandle++
	t := &target{Match: *m, handle: e.lastHandle}
	if err := e.highlight.Set(&t.Match); err != nil {
		e.log.Warn("dropping target %q at %s: %v", t.Text, t.Pos, err)
		e.target = nil
		return
	}
	e.target = t
	e.log.Debug("target %s %q at %s", t.Rule.Name, t.Text, t.Pos)
}

// dropTarget clears the target without running hooks.
func (e *Engine) dropTarget() {
	e.dragging = false
	e.target = nil
	e.highlight.Clear()
}

// lookup resolves a handle to the current or a pinned target.
func (e *Engine) lookup(h rule.Handle) *target {
	if e.target != nil && e.target.handle == h {
		return e.target
	}
	if p, ok := e.pinned[h]; ok {
		return p.t
	}
	return nil
}

// Pin keeps h writable after it stops being the current target. Unknown
// handles get a no-op release.
func (e *Engine) Pin(h rule.Handle) func() {
	t := e.lookup(h)
	if t == nil {
		return func() {}
	}
	p, ok := e.pinned[h]
	if !ok {
		p = &pin{t: t}
		e.pinned[h] = p
	}
	p.refs++

	released := false
	return func() {
		if released {
			return
		}
		released = true
		p.refs--
		if p.refs <= 0 && e.pinned[h] == p {
			delete(e.pinned, h)
		}
	}
}

// Invalidate tells the engine the host changed the buffer without going
// through SetText. The current and pinned targets are re-matched before
// their next write; a hovered target is re-acquired at once.
func (e *Engine) Invalidate() {
	if e.target != nil {
		e.target.stale = true
	}
	for _, p := range e.pinned {
		p.t.stale = true
	}
	if e.attached && !e.dragging && e.held() {
		e.acquire()
	}
}

// SetText replaces the text of the target identified by h. It is the
// only path by which rules change the buffer.
func (e *Engine) SetText(h rule.Handle, text string) {
	t := e.lookup(h)
	if t == nil {
		e.log.Debug("ignoring text %q for stale handle %d", text, h)
		return
	}
	if strings.ContainsAny(text, "\r\n") {
		e.log.WithField("rule", t.Rule.Name).Warn("ignoring multi-line text %q for target %d", text, h)
		return
	}
	if t.stale && !e.revalidate(t) {
		e.log.Debug("ignoring text %q: target %d no longer matches", text, h)
		return
	}

	e.apply(t, text)

	// a pinned write can shift the columns of the current target
	if t != e.target && e.target != nil && !e.dragging && e.target.Pos.Row == t.Pos.Row {
		e.acquire()
	}
}

// revalidate re-runs the matcher on t's row. It succeeds only if the same
// rule still matches starting at the same column, and adopts the fresh
// range.
func (e *Engine) revalidate(t *target) bool {
	if line, ok := e.host.LineText(t.Pos.Row); ok {
		for _, m := range match.FindAll(e.rules, line, t.Pos.Row) {
			if m.Rule != t.Rule || m.Pos != t.Pos {
				continue
			}
			t.Text = m.Text
			t.Range = m.Range
			t.stale = false
			if t == e.target {
				e.resync(t)
			}
			return true
		}
	}
	e.log.Debug("target %q at %s no longer matches", t.Text, t.Pos)
	return false
}

// resync moves the highlight to t's current range.
func (e *Engine) resync(t *target) {
	if err := e.highlight.Set(&t.Match); err != nil {
		// the host refused the marker; keep the one-marker-per-target
		// invariant by dropping the target
		e.log.Error("highlight resync failed: %v", err)
		e.dropTarget()
	}
}
