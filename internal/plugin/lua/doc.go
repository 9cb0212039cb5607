// Package lua loads interaction rules written in Lua.
//
// A rule file returns a list of rule tables:
//
//	return {
//	    {
//	        name = "percent",
//	        pattern = [[\d+%]],
//	        cursor = "ew-resize",
//	        on_drag = function(text, ev)
//	            local n = tonumber(text:sub(1, -2)) + ev.dx
//	            return tostring(math.max(0, math.min(100, n))) .. "%"
//	        end,
//	    },
//	}
//
// Hooks are called as fn(text, event). The event table carries dx, dy, x,
// y, button, row and column; it is nil for a drag ended without a pointer
// event. Returning a string replaces the matched text; returning nil leaves
// it unchanged.
//
// Each file runs in its own State. Only the base, table, string and math
// libraries are available, file and code loading are removed, print goes
// to the log, and every call is bounded by an execution timeout. The
// scrub module exposes the built-in transforms (nudge_number, nudge_vec2,
// parse_color and format_color) to rule authors.
package lua
