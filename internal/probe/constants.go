package probe

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusNotFound = 404
)

// Slider bounds the dashboard exposes.
const (
	MinTop = 1
	MaxTop = 10
)

// Defaults applied when Config leaves a field unset.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// Statistics and ranks accepted by /api/select.
var (
	Statistics = []string{"oldest", "median", "youngest"}
	Ranks      = []string{"maximum", "minimum"}
)
