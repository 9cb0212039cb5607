package lua

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrub/internal/interact/rule"
)

// Hook field names in a rule table.
const (
	fieldOnClick     = "on_click"
	fieldOnDragStart = "on_drag_start"
	fieldOnDrag      = "on_drag"
	fieldOnDragEnd   = "on_drag_end"
)

// Module is a loaded rule file. Its rules stay valid until Close.
type Module struct {
	path  string
	state *State
	rules []rule.Rule
}

// LoadFile evaluates the rule file at path in a fresh sandboxed state.
func LoadFile(path string, opts ...Option) (*Module, error) {
	s := NewState(opts...)
	ret, err := s.DoFile(path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return newModuleFrom(path, s, ret)
}

// LoadString evaluates rule source labelled name.
func LoadString(name, code string, opts ...Option) (*Module, error) {
	s := NewState(opts...)
	ret, err := s.DoString(name, code)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return newModuleFrom(name, s, ret)
}

func newModuleFrom(path string, s *State, ret []lua.LValue) (*Module, error) {
	m := &Module{path: path, state: s}
	rs, err := m.convert(ret)
	if err != nil {
		s.Close()
		return nil, err
	}
	m.rules = rs
	s.log.Debug("loaded %d lua rules from %s", len(rs), path)
	return m, nil
}

// Path returns the file the module was loaded from.
func (m *Module) Path() string { return m.path }

// Rules returns the module's rules in file order.
func (m *Module) Rules() []rule.Rule {
	out := make([]rule.Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Close releases the module's Lua state. Hooks of its rules become no-ops.
func (m *Module) Close() error {
	return m.state.Close()
}

func (m *Module) convert(ret []lua.LValue) ([]rule.Rule, error) {
	if len(ret) == 0 {
		return nil, fmt.Errorf("%s: %w", m.path, ErrNoRules)
	}
	tbl, ok := ret[0].(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: %w (got %s)", m.path, ErrNoRules, ret[0].Type())
	}

	// A single rule table may be returned on its own.
	if tbl.RawGetString("pattern") != lua.LNil {
		r, err := m.toRule(1, tbl)
		if err != nil {
			return nil, err
		}
		return []rule.Rule{r}, nil
	}

	n := tbl.Len()
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", m.path, ErrNoRules)
	}
	out := make([]rule.Rule, 0, n)
	for i := 1; i <= n; i++ {
		rt, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, &RuleError{Path: m.path, Index: i, Err: fmt.Errorf("expected table, got %s", tbl.RawGetInt(i).Type())}
		}
		r, err := m.toRule(i, rt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *Module) toRule(index int, t *lua.LTable) (rule.Rule, error) {
	fail := func(name string, err error) (rule.Rule, error) {
		return rule.Rule{}, &RuleError{Path: m.path, Index: index, Name: name, Err: err}
	}

	name, err := optString(t, "name")
	if err != nil {
		return fail("", err)
	}
	if name == "" {
		return fail("", errors.New("missing name"))
	}
	src, err := optString(t, "pattern")
	if err != nil {
		return fail(name, err)
	}
	if src == "" {
		return fail(name, errors.New("missing pattern"))
	}
	pattern, err := regexp.Compile(src)
	if err != nil {
		return fail(name, err)
	}
	cursor, err := optString(t, "cursor")
	if err != nil {
		return fail(name, err)
	}
	class, err := optString(t, "class")
	if err != nil {
		return fail(name, err)
	}

	r := rule.Rule{
		Name:    name,
		Pattern: pattern,
		Cursor:  cursor,
		Class:   class,
	}
	for _, h := range []struct {
		field string
		dst   *rule.Hook
	}{
		{fieldOnClick, &r.Hooks.OnClick},
		{fieldOnDragStart, &r.Hooks.OnDragStart},
		{fieldOnDrag, &r.Hooks.OnDrag},
		{fieldOnDragEnd, &r.Hooks.OnDragEnd},
	} {
		switch v := t.RawGetString(h.field).(type) {
		case *lua.LNilType:
		case *lua.LFunction:
			*h.dst = m.hook(name, h.field, v)
		default:
			return fail(name, fmt.Errorf("%s must be a function, got %s", h.field, v.Type()))
		}
	}
	return r, nil
}

func optString(t *lua.LTable, field string) (string, error) {
	switch v := t.RawGetString(field).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s must be a string, got %s", field, v.Type())
	}
}

// hook adapts a Lua function to a rule hook. The function receives the
// matched text and an event table; a single-line string (or number)
// result replaces the match, nil or false leaves it alone.
func (m *Module) hook(ruleName, field string, fn *lua.LFunction) rule.Hook {
	log := m.state.log.WithField("rule", ruleName)
	return func(ed rule.Editor, c *rule.Call) {
		ret, err := m.state.Call(fn, lua.LString(c.Text), m.eventTable(c))
		if err != nil {
			if errors.Is(err, ErrStateClosed) {
				return
			}
			log.Error("%v", &HookError{Rule: ruleName, Hook: field, Err: err})
			return
		}
		if len(ret) == 0 {
			return
		}
		var next string
		switch v := ret[0].(type) {
		case lua.LString:
			next = string(v)
		case lua.LNumber:
			next = v.String()
		case *lua.LNilType:
			return
		case lua.LBool:
			if !bool(v) {
				return
			}
			log.Warn("%s returned true; expected a string or nil", field)
			return
		default:
			log.Warn("%s returned %s; expected a string or nil", field, v.Type())
			return
		}
		if strings.ContainsAny(next, "\r\n") {
			log.Warn("%s returned %q; matches are single-line", field, next)
			return
		}
		if next != c.Text {
			ed.SetText(c.Target, next)
		}
	}
}

// eventTable converts the triggering pointer event. Calls without an
// event, such as a drag ended by releasing the modifier, get nil.
func (m *Module) eventTable(c *rule.Call) lua.LValue {
	if c.Event == nil {
		return lua.LNil
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.closed {
		return lua.LNil
	}
	L := m.state.L
	t := L.NewTable()
	t.RawSetString("dx", lua.LNumber(c.Event.Delta.X))
	t.RawSetString("dy", lua.LNumber(c.Event.Delta.Y))
	t.RawSetString("x", lua.LNumber(c.Event.Position.X))
	t.RawSetString("y", lua.LNumber(c.Event.Position.Y))
	t.RawSetString("button", lua.LString(c.Event.Button.String()))
	t.RawSetString("row", lua.LNumber(c.Start.Row))
	t.RawSetString("column", lua.LNumber(c.Start.Column))
	return t
}

// LoadFiles loads each path in order. On error the modules loaded so far
// are closed.
func LoadFiles(paths []string, opts ...Option) ([]*Module, error) {
	mods := make([]*Module, 0, len(paths))
	for _, p := range paths {
		m, err := LoadFile(p, opts...)
		if err != nil {
			CloseAll(mods)
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// CloseAll closes every module.
func CloseAll(mods []*Module) {
	for _, m := range mods {
		_ = m.Close()
	}
}

// Rules concatenates the rules of mods in order.
func Rules(mods []*Module) []rule.Rule {
	var out []rule.Rule
	for _, m := range mods {
		out = append(out, m.rules...)
	}
	return out
}
