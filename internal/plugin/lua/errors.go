package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a chunk or hook runs past the
	// execution timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoRules is returned when a rule file evaluates to something other
	// than a rule table or a list of rule tables.
	ErrNoRules = errors.New("rule file must return a table of rules")
)

// RuleError describes a malformed rule table in a rule file.
type RuleError struct {
	// Path is the rule file.
	Path string

	// Index is the 1-based position of the rule in the returned list.
	Index int

	// Name is the rule name, when it could be read.
	Name string

	// Err is the underlying problem.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: rule %d (%s): %v", e.Path, e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: rule %d: %v", e.Path, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// HookError reports a failed call into a rule hook.
type HookError struct {
	Rule string
	Hook string
	Err  error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("rule %s: %s: %v", e.Rule, e.Hook, e.Err)
}

// Unwrap returns the underlying error.
func (e *HookError) Unwrap() error {
	return e.Err
}
