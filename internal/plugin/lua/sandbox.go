package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrub/internal/logging"
)

// Globals removed from every state. None of io, os, debug or package is
// ever opened.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"collectgarbage",
	"setfenv",
	"getfenv",
}

// Modules require may return besides the ones passed to installSandbox.
var safeModules = []string{"string", "table", "math"}

// installSandbox strips file and code loading from L, routes print to log
// and replaces require with a lookup over safe and extra modules.
func installSandbox(L *lua.LState, log *logging.Logger, extra map[string]lua.LValue) {
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		log.Info("lua: %s", strings.Join(parts, "\t"))
		return 0
	}))

	modules := make(map[string]lua.LValue, len(safeModules)+len(extra))
	for _, name := range safeModules {
		modules[name] = L.GetGlobal(name)
	}
	for name, mod := range extra {
		modules[name] = mod
		L.SetGlobal(name, mod)
	}

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		mod, ok := modules[name]
		if !ok {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(mod)
		return 1
	}))
}
