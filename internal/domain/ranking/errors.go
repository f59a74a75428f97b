package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrInvalidN = errors.New("invalid ranking size")
)
