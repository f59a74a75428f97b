package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/laureates/internal/probe"
	"github.com/okian/laureates/pkg/logger"
)

// Default configuration constants.
const (
	defaultBaseURL   = "http://localhost:9080"
	defaultRunBudget = 2 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", defaultBaseURL, "Base URL of the service")
		workers    = flag.Int("workers", probe.DefaultWorkers, "Number of concurrent checks")
		timeout    = flag.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write a JSON report to this file")
		logFile    = flag.String("log", "", "Also write log lines to this file")
		verbose    = flag.Bool("verbose", false, "Log every check, not only failures")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}

	closer, err := probe.SetupLogging(*logFile)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultRunBudget)

	_, err = probe.Run(ctx, probe.Config{
		BaseURL:    *baseURL,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
		Logger:     logger.Named("probe"),
	})
	cancel()
	stop()
	_ = closer.Close()

	if err != nil {
		_, _ = os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
