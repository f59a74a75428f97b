package probe

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrViolations = errors.New("invariant violations found")
	ErrStatus     = errors.New("unexpected status")
)
