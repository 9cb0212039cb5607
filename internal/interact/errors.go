package interact

import "errors"

// Errors returned by Attach.
var (
	// ErrNoHost is returned when Attach is called without a host.
	ErrNoHost = errors.New("interact: no host editor")

	// ErrNoRules is returned when Attach is called with an empty rule set.
	ErrNoRules = errors.New("interact: empty rule set")

	// ErrNoSurface is returned by hosts whose editable surface is missing.
	ErrNoSurface = errors.New("interact: editable surface not available")
)
