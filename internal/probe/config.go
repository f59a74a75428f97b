// Package probe exercises a running laureate dashboard over HTTP and checks
// the ranking and selection invariants against what it serves.
package probe

import (
	"time"

	"github.com/okian/laureates/pkg/logger"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Workers    int           // Number of concurrent checks
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON report path
	Verbose    bool          // Log every check, not only failures
	Logger     logger.Logger // Defaults to a no-op logger
}

// Bar is one bar of a ranking response.
type Bar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Ranking mirrors the /api/countries response.
type Ranking struct {
	Column   string `json:"column"`
	N        int    `json:"n"`
	Total    int    `json:"total"`
	Distinct int    `json:"distinct"`
	Bars     []Bar  `json:"bars"`
}

// Selection mirrors the /api/select response.
type Selection struct {
	Category  string  `json:"category"`
	Value     float64 `json:"value"`
	Statistic string  `json:"statistic"`
	Rank      string  `json:"rank"`
}

// ErrorBody mirrors the API error shape.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violation is one failed check.
type Violation struct {
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// Report summarizes a probe run.
type Report struct {
	RunID      string        `json:"run_id"`
	BaseURL    string        `json:"base_url"`
	DatasetID  string        `json:"dataset_id"`
	Checks     int           `json:"checks"`
	Requests   int           `json:"requests"`
	NoData     int           `json:"no_data"`
	Violations []Violation   `json:"violations"`
	StartTime  time.Time     `json:"start_time"`
	Duration   time.Duration `json:"duration_ns"`
}
