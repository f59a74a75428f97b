package category

import "errors"

// Sentinel kinds for category errors.
var (
	ErrUnknown      = errors.New("unknown category")
	ErrUnknownGroup = errors.New("unknown category group")
)
