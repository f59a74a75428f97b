package selector

import "errors"

// Sentinel kinds for selector errors.
var (
	ErrNoData           = errors.New("no data available")
	ErrInvalidStatistic = errors.New("invalid statistic")
	ErrInvalidRank      = errors.New("invalid rank")
)
