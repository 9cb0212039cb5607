package lua

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrub/internal/logging"
)

// DefaultExecutionTimeout bounds a single chunk or hook call.
const DefaultExecutionTimeout = 250 * time.Millisecond

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes Go
// callers; Lua code itself always runs on the calling goroutine.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	log              *logging.Logger

	closed bool
}

// Option configures a State.
type Option func(*State)

// WithExecutionTimeout sets the execution timeout for each call into Lua.
// Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) Option {
	return func(s *State) {
		if d >= 0 {
			s.executionTimeout = d
		}
	}
}

// WithLogger sets the logger that receives print output and hook errors.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// NewState creates a new sandboxed Lua state with the scrub module
// installed.
func NewState(opts ...Option) *State {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		log:              logging.Null,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{
		SkipOpenLibs:        true,
		IncludeGoStackTrace: false,
	})
	openSafeLibraries(s.L)
	installSandbox(s.L, s.log, map[string]lua.LValue{
		moduleName: newModule(s.L),
	})
	return s
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile loads and runs a Lua file, returning the values it returns.
func (s *State) DoFile(path string) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}
	fn, err := s.L.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.call(fn)
}

// DoString runs a chunk of Lua source, returning the values it returns.
// name labels the chunk in error messages.
func (s *State) DoString(name, code string) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}
	fn, err := s.L.Load(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	return s.call(fn)
}

// Call invokes fn with args under the execution timeout.
// It returns an empty slice, not nil, when fn returns nothing.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}
	return s.call(fn, args...)
}

func (s *State) call(fn *lua.LFunction, args ...lua.LValue) (results []lua.LValue, err error) {
	ctx := context.Background()
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			s.L.SetTop(top)
			results, err = nil, fmt.Errorf("lua panic: %v", r)
		}
	}()

	s.L.Push(fn)
	for _, arg := range args {
		s.L.Push(arg)
	}
	if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
		s.L.SetTop(top)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrExecutionTimeout
		}
		return nil, err
	}

	n := s.L.GetTop() - top
	results = make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		results[i] = s.L.Get(top + i + 1)
	}
	s.L.SetTop(top)
	return results, nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
