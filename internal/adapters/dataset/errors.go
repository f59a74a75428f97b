package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrOpen   = errors.New("dataset open failed")
	ErrSchema = errors.New("dataset schema violation")
	ErrEmpty  = errors.New("dataset has no records")
)

// ErrUnknownColumn is returned for a column Store cannot project.
var ErrUnknownColumn = errors.New("unknown column")
