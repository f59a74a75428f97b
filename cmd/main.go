package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/laureates/internal/adapters/dataset"
	"github.com/okian/laureates/internal/adapters/http/api"
	"github.com/okian/laureates/internal/adapters/http/site"
	"github.com/okian/laureates/internal/adapters/http/swagger"
	app "github.com/okian/laureates/internal/app"
	"github.com/okian/laureates/internal/config"
	"github.com/okian/laureates/pkg/logger"
	"github.com/okian/laureates/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stderr)
	stop()
	os.Exit(code)
}

// run starts the dashboard and blocks until ctx is cancelled. Startup
// failures, such as a missing or malformed dataset, return a non-zero code.
func run(ctx context.Context, stderr io.Writer) int {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = fmt.Fprintln(stderr, "failed to initialize logging:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "failed to load config:", err)
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, svc, err := newHandler(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "dataset unusable; refusing to start",
			logger.String("data_path", cfg.DataPath), logger.Error(err))
		_, _ = fmt.Fprintln(stderr, "failed to load dataset:", err)
		return 1
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("records", svc.Records()),
			logger.String("dataset_id", svc.DatasetID()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			_, _ = fmt.Fprintln(stderr, "HTTP server failed:", err)
			return 1
		}
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
	return 0
}

// newHandler loads the dataset named by cfg and wires every route.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, *app.Service, error) {
	store, err := dataset.Load(ctx, cfg.DataPath,
		dataset.WithLogger(log.Named("dataset")),
		dataset.WithMaxViolations(cfg.MaxSchemaErrors),
	)
	if err != nil {
		return nil, nil, err
	}
	groups, err := cfg.Groups()
	if err != nil {
		return nil, nil, fmt.Errorf("category groups: %w", err)
	}

	svc := app.New(store,
		app.WithLogger(log.Named("service")),
		app.WithPalette(cfg.Palette),
		app.WithGroups(groups),
		app.WithDefaultTopN(cfg.DefaultTopN),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	api.NewServer(svc, svc, log.Named("http")).Register(ctx, mux)

	// Dashboard page owns every remaining path
	site.Register(ctx, mux)

	return mux, svc, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
