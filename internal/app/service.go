// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/laureates/internal/adapters/dataset"
	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/model"
	"github.com/okian/laureates/internal/domain/ranking"
	"github.com/okian/laureates/internal/domain/selector"
	"github.com/okian/laureates/internal/domain/stats"
	"github.com/okian/laureates/internal/domain/types"
	"github.com/okian/laureates/pkg/logger"
	"github.com/okian/laureates/pkg/metrics"
)

// Query kinds used as metric labels.
const (
	kindCountries  = "countries"
	kindCounts     = "counts"
	kindLifespans  = "lifespans"
	kindSelect     = "select"
	kindOverview   = "overview"
	kindCategories = "categories"
)

// Ranking is a top-N frequency chart over one column.
type Ranking struct {
	Column   string        `json:"column"`
	N        int           `json:"n"`
	Total    int           `json:"total"`
	Distinct int           `json:"distinct"`
	Bars     []ranking.Bar `json:"bars"`
}

// CategoryBox is the boxplot summary of one category's ages.
type CategoryBox struct {
	Category category.Category `json:"category"`
	Color    string            `json:"color"`
	stats.BoxSummary
}

// Lifespans holds the rows and summaries behind the lifespan boxplots.
type Lifespans struct {
	Selection string                       `json:"selection"`
	Rows      []model.AgePoint             `json:"rows"`
	Boxes     []CategoryBox                `json:"boxes"`
	Colors    map[category.Category]string `json:"colors"`
}

// CategorySummary describes one category in the overview.
type CategorySummary struct {
	Category  category.Category `json:"category"`
	Laureates int               `json:"laureates"`
	WithAge   int               `json:"with_age"`
	Age       *stats.BoxSummary `json:"age,omitempty"`
}

// Overview summarizes the loaded dataset.
type Overview struct {
	DatasetID   string            `json:"dataset_id"`
	LoadedAt    time.Time         `json:"loaded_at"`
	Records     int               `json:"records"`
	MissingAges int               `json:"missing_ages"`
	Countries   int               `json:"countries"`
	FirstYear   types.NullInt     `json:"first_year"`
	LastYear    types.NullInt     `json:"last_year"`
	Categories  []CategorySummary `json:"categories"`
}

// Service implements the API dependencies for the laureate dashboard. All
// methods are pure reads of an immutable store, so it is safe for
// concurrent use and repeated calls return identical results.
type Service struct {
	store       *dataset.Store
	palette     []string
	groups      category.Groups
	defaultTopN int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPalette sets the bar colors used by rankings.
func WithPalette(palette []string) Option {
	return func(s *Service) {
		if len(palette) > 0 {
			s.palette = append([]string(nil), palette...)
		}
	}
}

// WithGroups sets the category groups offered to the selector.
func WithGroups(groups category.Groups) Option {
	return func(s *Service) {
		if len(groups) > 0 {
			s.groups = groups
		}
	}
}

// WithDefaultTopN sets the N used when a caller passes zero.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n >= ranking.MinN && n <= ranking.MaxN {
			s.defaultTopN = n
		}
	}
}

// New constructs a Service over a loaded store.
func New(store *dataset.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		palette:     ranking.DefaultPalette(),
		groups:      category.DefaultGroups(),
		defaultTopN: 5,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultTopN is the N used when none is requested.
func (s *Service) DefaultTopN() int { return s.defaultTopN }

// Groups lists the selector group names.
func (s *Service) Groups() []string { return s.groups.Names() }

// DatasetID identifies the loaded dataset.
func (s *Service) DatasetID() string { return s.store.ID() }

// Records is the number of loaded records.
func (s *Service) Records() int { return s.store.Len() }

// TopCountries ranks birth countries; n of zero means the default.
func (s *Service) TopCountries(ctx context.Context, n int) (Ranking, error) {
	defer observe(kindCountries, time.Now())
	return s.rank(ctx, dataset.ColumnBirthCountry, n)
}

// TopValues ranks any categorical column the store exposes.
func (s *Service) TopValues(ctx context.Context, column string, n int) (Ranking, error) {
	defer observe(kindCounts, time.Now())
	return s.rank(ctx, column, n)
}

func (s *Service) rank(ctx context.Context, column string, n int) (Ranking, error) {
	if n == 0 {
		n = s.defaultTopN
	}
	values, err := s.store.Column(column)
	if err != nil {
		return Ranking{}, err
	}
	counts := ranking.Counts(values)
	top, err := ranking.TopN(counts, n)
	if err != nil {
		return Ranking{}, err
	}
	s.logger.Debug(ctx, "ranked column",
		logger.String("column", column),
		logger.Int("n", n),
		logger.Int("bars", len(top)))
	return Ranking{
		Column:   column,
		N:        n,
		Total:    ranking.Total(counts),
		Distinct: len(counts),
		Bars:     ranking.Bars(top, s.palette),
	}, nil
}

// Lifespans returns age rows ordered by age plus one box per category.
// The selection is "All" or a category label.
func (s *Service) Lifespans(ctx context.Context, selection string) (Lifespans, error) {
	defer observe(kindLifespans, time.Now())

	var filter *category.Category
	label := category.AllLabel
	if selection != "" && !isAll(selection) {
		c, err := category.Parse(selection)
		if err != nil {
			return Lifespans{}, err
		}
		filter = &c
		label = c.String()
	}

	ages := s.store.AgesByCategory()
	boxes := []CategoryBox{}
	for _, c := range s.store.Categories() {
		if filter != nil && c != *filter {
			continue
		}
		box, err := stats.Box(ages[c])
		if errors.Is(err, stats.ErrEmpty) {
			continue
		}
		if err != nil {
			return Lifespans{}, fmt.Errorf("box %s: %w", c, err)
		}
		boxes = append(boxes, CategoryBox{Category: c, Color: c.Color(), BoxSummary: box})
	}

	rows := s.store.AgePoints(filter)
	s.logger.Debug(ctx, "lifespans computed",
		logger.String("selection", label),
		logger.Int("rows", len(rows)),
		logger.Int("boxes", len(boxes)))
	return Lifespans{
		Selection: label,
		Rows:      rows,
		Boxes:     boxes,
		Colors:    category.Colors(),
	}, nil
}

// SelectCategory applies the category selector to the named group. It
// returns selector.ErrNoData when no category in the group has an age.
func (s *Service) SelectCategory(ctx context.Context, group, statistic, rank string) (selector.Result, error) {
	defer observe(kindSelect, time.Now())

	cats, err := s.groups.Resolve(group)
	if err != nil {
		return selector.Result{}, err
	}
	stat, err := selector.ParseStatistic(statistic)
	if err != nil {
		return selector.Result{}, err
	}
	r, err := selector.ParseRank(rank)
	if err != nil {
		return selector.Result{}, err
	}

	res, err := selector.Select(s.store.AgesByCategory(), cats, stat, r)
	if errors.Is(err, selector.ErrNoData) {
		metrics.RecordSelectorNoData()
		s.logger.Info(ctx, "no ages for selection",
			logger.String("group", group),
			logger.String("statistic", string(stat)),
			logger.String("rank", string(r)))
		return res, err
	}
	if err != nil {
		return res, err
	}
	s.logger.Debug(ctx, "category selected",
		logger.String("group", group),
		logger.String("category", res.Category.String()),
		logger.Float64("value", res.Value),
		logger.Any("per_category", res.PerCategory))
	return res, nil
}

// Overview summarizes the dataset per category.
func (s *Service) Overview(_ context.Context) (Overview, error) {
	defer observe(kindOverview, time.Now())

	countries, err := s.store.Column(dataset.ColumnBirthCountry)
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{
		DatasetID:   s.store.ID(),
		LoadedAt:    s.store.LoadedAt(),
		Records:     s.store.Len(),
		MissingAges: s.store.MissingAges(),
		Countries:   len(ranking.Counts(countries)),
		FirstYear:   types.Missing,
		LastYear:    types.Missing,
		Categories:  []CategorySummary{},
	}
	if lo, hi, ok := s.store.PrizeYears(); ok {
		ov.FirstYear, ov.LastYear = types.Int(lo), types.Int(hi)
	}

	perCategory := make(map[category.Category]int)
	for _, r := range s.store.Records() {
		perCategory[r.Category]++
	}
	ages := s.store.AgesByCategory()
	for _, c := range category.All() {
		if perCategory[c] == 0 {
			continue
		}
		sum := CategorySummary{Category: c, Laureates: perCategory[c], WithAge: len(ages[c])}
		if box, err := stats.Box(ages[c]); err == nil {
			sum.Age = &box
		}
		ov.Categories = append(ov.Categories, sum)
	}
	return ov, nil
}

// Categories returns the options for the category dropdown: "All" then
// every category present, in order of first appearance by age.
func (s *Service) Categories(_ context.Context) []string {
	defer observe(kindCategories, time.Now())

	present := s.store.Categories()
	out := make([]string, 0, len(present)+1)
	out = append(out, category.AllLabel)
	for _, c := range present {
		out = append(out, c.String())
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"datasetId":     s.store.ID(),
		"source":        s.store.Source(),
		"loadedAt":      s.store.LoadedAt().Format(time.RFC3339),
		"records":       s.store.Len(),
		"missingAges":   s.store.MissingAges(),
		"aliasedRows":   s.store.Aliased(),
		"defaultTopN":   s.defaultTopN,
		"paletteSize":   len(s.palette),
		"groups":        s.groups.Names(),
		"uptimeSeconds": int(time.Since(s.store.LoadedAt()).Seconds()),
	}
}

func isAll(selection string) bool {
	return strings.EqualFold(strings.TrimSpace(selection), category.AllLabel)
}

func observe(kind string, start time.Time) {
	metrics.RecordQuery(kind, float64(time.Since(start).Microseconds())/1000)
}
