// Package selector picks the category whose per-category age statistic is
// the largest or smallest within a group of categories.
package selector

import (
	"fmt"
	"strings"

	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/stats"
)

// Statistic chooses the per-category age summary.
type Statistic string

// Supported statistics.
const (
	Oldest   Statistic = "oldest"   // max age
	Median   Statistic = "median"   // median age
	Youngest Statistic = "youngest" // min age
)

// Rank chooses which extreme across categories wins.
type Rank string

// Supported ranks.
const (
	Maximum Rank = "maximum"
	Minimum Rank = "minimum"
)

// ParseStatistic parses a statistic name, ignoring case.
func ParseStatistic(s string) (Statistic, error) {
	switch st := Statistic(strings.ToLower(strings.TrimSpace(s))); st {
	case Oldest, Median, Youngest:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatistic, s)
}

// ParseRank parses a rank name, ignoring case.
func ParseRank(s string) (Rank, error) {
	switch r := Rank(strings.ToLower(strings.TrimSpace(s))); r {
	case Maximum, Minimum:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
}

func (s Statistic) compute(ages []int) (float64, error) {
	switch s {
	case Oldest:
		return stats.Max(ages)
	case Median:
		return stats.Median(ages)
	case Youngest:
		return stats.Min(ages)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatistic, string(s))
}

// CategoryValue is the statistic computed for one category.
type CategoryValue struct {
	Category category.Category `json:"category"`
	Value    float64           `json:"value"`
	Count    int               `json:"count"`
}

// Result is the outcome of Select.
type Result struct {
	Category    category.Category `json:"category"`
	Value       float64           `json:"value"`
	Statistic   Statistic         `json:"statistic"`
	Rank        Rank              `json:"rank"`
	PerCategory []CategoryValue   `json:"per_category"`
}

// Select evaluates stat over the ages of every category in group and returns
// the one achieving the extreme chosen by rank. Categories without any ages
// are skipped; equal values resolve to the category listed first in group.
// ErrNoData is returned when no category in the group has an age.
func Select(ages map[category.Category][]int, group []category.Category, stat Statistic, rank Rank) (Result, error) {
	if rank != Maximum && rank != Minimum {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidRank, string(rank))
	}
	res := Result{Statistic: stat, Rank: rank, PerCategory: []CategoryValue{}}
	found := false
	for _, c := range group {
		vals := ages[c]
		if len(vals) == 0 {
			continue
		}
		v, err := stat.compute(vals)
		if err != nil {
			return Result{}, err
		}
		res.PerCategory = append(res.PerCategory, CategoryValue{Category: c, Value: v, Count: len(vals)})
		if !found || (rank == Maximum && v > res.Value) || (rank == Minimum && v < res.Value) {
			res.Category = c
			res.Value = v
			found = true
		}
	}
	if !found {
		return Result{}, ErrNoData
	}
	return res, nil
}
