package lua

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrub/internal/logging"
)

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	ret, err := s.DoString("test", `return 1 + 1, "two"`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(ret) != 2 {
		t.Fatalf("DoString() returned %d values, want 2", len(ret))
	}
	if n, ok := ret[0].(glua.LNumber); !ok || n != 2 {
		t.Errorf("ret[0] = %v, want 2", ret[0])
	}
	if str, ok := ret[1].(glua.LString); !ok || str != "two" {
		t.Errorf("ret[1] = %v, want two", ret[1])
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	if _, err := s.DoString("bad", `return (`); err == nil {
		t.Error("DoString() expected syntax error")
	}
}

func TestStateRuntimeError(t *testing.T) {
	s := NewState()
	defer s.Close()

	_, err := s.DoString("boom", `error("boom")`)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("DoString() error = %v, want boom", err)
	}
	// The stack must be balanced for the next call.
	ret, err := s.DoString("after", `return 3`)
	if err != nil || len(ret) != 1 {
		t.Errorf("DoString() after error = %v, %v", ret, err)
	}
}

func TestStateCallNoResults(t *testing.T) {
	s := NewState()
	defer s.Close()

	ret, err := s.DoString("fn", `return function() end`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	fn := ret[0].(*glua.LFunction)
	got, err := s.Call(fn)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Call() = %v, want empty slice", got)
	}
}

func TestStateExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	_, err := s.DoString("spin", `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout took too long to fire")
	}

	// The state stays usable.
	if _, err := s.DoString("after", `return 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if _, err := s.DoString("x", `return 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if v := s.GetGlobal("print"); v != glua.LNil {
		t.Errorf("GetGlobal() on closed state = %v, want nil", v)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug", "package"} {
		if v := s.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s should not be available, got %s", name, v.Type())
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"string", "table", "math", "scrub"} {
		if _, err := s.DoString("req", `return require("`+name+`")`); err != nil {
			t.Errorf("require(%q) error = %v", name, err)
		}
	}
	for _, name := range []string{"io", "os", "debug", "socket"} {
		if _, err := s.DoString("req", `return require("`+name+`")`); err == nil {
			t.Errorf("require(%q) should fail", name)
		}
	}
}

func TestSandboxPrintLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	s := NewState(WithLogger(log))
	defer s.Close()

	if _, err := s.DoString("p", `print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if !strings.Contains(buf.String(), "lua: hello\t42") {
		t.Errorf("log = %q, want printed line", buf.String())
	}
}

func TestModuleHelpers(t *testing.T) {
	s := NewState()
	defer s.Close()

	tests := []struct {
		code string
		want glua.LValue
	}{
		{`return scrub.nudge_number("5.0", 3)`, glua.LString("5.3")},
		{`return scrub.nudge_number("abc", 1)`, glua.LNil},
		{`return scrub.nudge_vec2("vec2(1, 2)", 1, -1)`, glua.LString("vec2(2, 1)")},
		{`return scrub.parse_color("rgb(255, 0, 0)")`, glua.LString("#ff0000")},
		{`local _, n = scrub.parse_color("rgb(255, 0, 0)") return n`, glua.LString("rgb")},
		{`return scrub.parse_color("nope")`, glua.LNil},
		{`return scrub.format_color("#00ff00", "rgb")`, glua.LString("rgb(0, 255, 0)")},
		{`return scrub.format_color("#00ff00")`, glua.LString("#00ff00")},
	}
	for _, tt := range tests {
		ret, err := s.DoString("helper", tt.code)
		if err != nil {
			t.Errorf("%s: error = %v", tt.code, err)
			continue
		}
		if len(ret) == 0 || ret[0] != tt.want {
			t.Errorf("%s = %v, want %v", tt.code, ret, tt.want)
		}
	}
}
