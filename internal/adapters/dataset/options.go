// Package dataset loads the laureate CSV into an immutable, validated store.
package dataset

import "github.com/okian/laureates/pkg/logger"

// Default loader configuration constants.
const (
	defaultMaxViolations = 20
)

// Option applies a configuration option to the loader.
type Option func(*loader)

// WithMaxViolations caps how many schema violations are collected before
// loading stops. Values below one are ignored.
func WithMaxViolations(n int) Option {
	return func(l *loader) {
		if n > 0 {
			l.maxViolations = n
		}
	}
}

// WithLogger sets the logger used to report load progress.
func WithLogger(lg logger.Logger) Option {
	return func(l *loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithAllowEmpty accepts a file with a header but no rows.
func WithAllowEmpty() Option {
	return func(l *loader) {
		l.allowEmpty = true
	}
}
