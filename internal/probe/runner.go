package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/laureates/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	reportPermission    = 0600
)

type health struct {
	Status    string `json:"status"`
	Records   int    `json:"records"`
	DatasetID string `json:"dataset_id"`
}

type runner struct {
	cfg    Config
	log    logger.Logger
	client *HTTPClient

	mu     sync.Mutex
	report *Report
}

// Run executes every check against cfg.BaseURL. It returns the report and
// ErrViolations when any invariant failed.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	r := &runner{
		cfg:    cfg,
		log:    cfg.Logger,
		client: newHTTPClient(cfg.BaseURL, cfg.Timeout),
		report: &Report{
			RunID:      uuid.NewString(),
			BaseURL:    cfg.BaseURL,
			StartTime:  time.Now(),
			Violations: []Violation{},
		},
	}
	if r.log == nil {
		r.log = logger.NewNop()
	}

	r.log.Info(ctx, "starting probe",
		logger.String("runID", r.report.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	// Step 1: Check service health
	if err := r.checkHealth(ctx); err != nil {
		return r.finish(ctx), err
	}

	// Step 2: Widest ranking, the reference for every other N
	var full Ranking
	if _, err := r.client.GetJSON(ctx, countriesPath(MaxTop), &full); err != nil {
		return r.finish(ctx), fmt.Errorf("reference ranking: %w", err)
	}

	// Step 3: Rankings and selections concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for n := MinTop; n <= MaxTop; n++ {
		n := n
		g.Go(func() error { return r.checkRanking(gctx, n, full) })
	}
	for _, stat := range Statistics {
		for _, rank := range Ranks {
			stat, rank := stat, rank
			g.Go(func() error { return r.checkSelection(gctx, stat, rank) })
		}
	}
	if err := g.Wait(); err != nil {
		return r.finish(ctx), err
	}

	report := r.finish(ctx)
	if r.cfg.OutputFile != "" {
		if err := SaveReport(r.cfg.OutputFile, report); err != nil {
			r.log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}
	if len(report.Violations) > 0 {
		return report, fmt.Errorf("%w: %d", ErrViolations, len(report.Violations))
	}
	return report, nil
}

// checkHealth verifies the service is up and has data.
func (r *runner) checkHealth(ctx context.Context) error {
	var h health
	if _, err := r.client.GetJSON(ctx, "/healthz", &h); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if h.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, h.Status)
	}
	r.mu.Lock()
	r.report.DatasetID = h.DatasetID
	r.mu.Unlock()
	r.log.Info(ctx, "service is healthy",
		logger.Int("records", h.Records),
		logger.String("datasetID", h.DatasetID))
	return nil
}

// checkRanking requests top=n twice and checks both answers.
func (r *runner) checkRanking(ctx context.Context, n int, full Ranking) error {
	check := "countries?top=" + strconv.Itoa(n)
	var first, second Ranking
	a, err := r.client.GetJSON(ctx, countriesPath(n), &first)
	if err != nil {
		return fmt.Errorf("%s: %w", check, err)
	}
	b, err := r.client.GetJSON(ctx, countriesPath(n), &second)
	if err != nil {
		return fmt.Errorf("%s: %w", check, err)
	}
	problems := append(VerifyRanking(n, first, full), VerifyIdentical(a, b)...)
	r.record(ctx, check, problems)
	if r.cfg.Verbose {
		r.log.Info(ctx, "ranking checked", logger.Int("n", n), logger.Int("bars", len(first.Bars)))
	}
	return nil
}

// checkSelection accepts either a selected category or a no_data answer.
func (r *runner) checkSelection(ctx context.Context, stat, rank string) error {
	check := "select " + stat + "/" + rank
	q := url.Values{"statistic": {stat}, "rank": {rank}}
	status, body, err := r.client.Get(ctx, "/api/select?"+q.Encode())
	if err != nil {
		return fmt.Errorf("%s: %w", check, err)
	}
	var problems []string
	switch status {
	case StatusOK:
		var s Selection
		if err := json.Unmarshal(body, &s); err != nil {
			problems = append(problems, "undecodable body: "+err.Error())
			break
		}
		problems = VerifySelection(stat, rank, s)
		if r.cfg.Verbose {
			r.log.Info(ctx, "selection checked",
				logger.String("statistic", stat),
				logger.String("rank", rank),
				logger.String("category", s.Category))
		}
	case StatusNotFound:
		var e ErrorBody
		if err := json.Unmarshal(body, &e); err != nil || e.Code != "no_data" {
			problems = append(problems, "404 without a no_data code")
			break
		}
		r.mu.Lock()
		r.report.NoData++
		r.mu.Unlock()
	default:
		problems = append(problems, fmt.Sprintf("status %d", status))
	}
	r.record(ctx, check, problems)
	return nil
}

func (r *runner) record(ctx context.Context, check string, problems []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Checks++
	for _, p := range problems {
		r.report.Violations = append(r.report.Violations, Violation{Check: check, Detail: p})
		r.log.Error(ctx, "invariant violated", logger.String("check", check), logger.String("detail", p))
	}
}

func (r *runner) finish(ctx context.Context) *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Requests = r.client.Requests()
	r.report.Duration = time.Since(r.report.StartTime)
	r.log.Info(ctx, "probe finished",
		logger.Int("checks", r.report.Checks),
		logger.Int("requests", r.report.Requests),
		logger.Int("noData", r.report.NoData),
		logger.Int("violations", len(r.report.Violations)),
		logger.Duration("duration", r.report.Duration))
	out := *r.report
	out.Violations = make([]Violation, len(r.report.Violations))
	copy(out.Violations, r.report.Violations)
	return &out
}

// SaveReport writes the report as indented JSON, creating parent
// directories as needed.
func SaveReport(filename string, report *Report) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, data, reportPermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func countriesPath(n int) string {
	return "/api/countries?top=" + strconv.Itoa(n)
}
