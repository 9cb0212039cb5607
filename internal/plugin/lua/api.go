package lua

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrub/internal/rules"
)

// moduleName is the global (and require name) of the helper module.
const moduleName = "scrub"

// newModule builds the scrub helper table. Helpers expose the built-in
// rules' text transforms so Lua rules can reuse them.
func newModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"nudge_number": apiNudgeNumber,
		"nudge_vec2":   apiNudgeVec2,
		"parse_color":  apiParseColor,
		"format_color": apiFormatColor,
	})
}

// nudge_number(text, steps) -> string | nil
func apiNudgeNumber(L *lua.LState) int {
	text := L.CheckString(1)
	steps := float64(L.CheckNumber(2))
	next, ok := rules.NudgeNumber(text, steps)
	return pushStringOrNil(L, next, ok)
}

// nudge_vec2(text, dx, dy) -> string | nil
func apiNudgeVec2(L *lua.LState) int {
	text := L.CheckString(1)
	dx := float64(L.CheckNumber(2))
	dy := float64(L.OptNumber(3, 0))
	next, ok := rules.NudgeVec2(text, dx, dy)
	return pushStringOrNil(L, next, ok)
}

// parse_color(text) -> hex, notation | nil
func apiParseColor(L *lua.LState) int {
	c, n, ok := rules.ParseColor(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(c.Clamped().Hex()))
	L.Push(lua.LString(notationName(n)))
	return 2
}

// format_color(hex, notation) -> string | nil
func apiFormatColor(L *lua.LState) int {
	c, err := colorful.Hex(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	n := rules.NotationHex
	if L.OptString(2, "hex") == "rgb" {
		n = rules.NotationRGB
	}
	L.Push(lua.LString(rules.FormatColor(c, n)))
	return 1
}

func notationName(n rules.Notation) string {
	if n == rules.NotationRGB {
		return "rgb"
	}
	return "hex"
}

func pushStringOrNil(L *lua.LState, s string, ok bool) int {
	if ok {
		L.Push(lua.LString(s))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}
