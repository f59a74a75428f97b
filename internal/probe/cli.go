package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/laureates/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging points the global logger at stdout, and also at logFile when
// one is given. The returned closer releases the file.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		if err := logger.InitWriter(os.Stdout); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return closeFunc(func() error { return nil }), nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.InitWriter(io.MultiWriter(os.Stdout, file)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Laureates Dashboard Probe
=========================

Checks a running dashboard: every slider position of the country ranking is
requested twice and must obey the keep-all tie rule and return identical
bodies; every statistic/rank pair of the category selector must answer with
a category or a no_data error.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -workers int
        Number of concurrent checks (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write a JSON report to this file
  -log string
        Also write log lines to this file
  -verbose
        Log every check, not only failures
  -help
        Show this help message

Exit status is 1 when the service is unreachable or any check fails.
`)
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }
