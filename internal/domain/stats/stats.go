// Package stats computes the summary statistics shown on the lifespan charts.
// All functions take the observations by value and never modify the input.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmpty is returned when a statistic is requested over no observations.
var ErrEmpty = errors.New("no observations")

const (
	quartileLow  = 0.25
	quartileMid  = 0.5
	quartileHigh = 0.75
	tukeyFactor  = 1.5
)

// BoxSummary is the five-number summary plus Tukey fences and outliers.
type BoxSummary struct {
	Count        int     `json:"count"`
	Min          float64 `json:"min"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	LowerWhisker float64 `json:"lower_whisker"`
	UpperWhisker float64 `json:"upper_whisker"`
	Outliers     []int   `json:"outliers"`
}

func sorted(values []int) []int {
	s := make([]int, len(values))
	copy(s, values)
	sort.Ints(s)
	return s
}

// quantileSorted uses linear interpolation between closest ranks.
func quantileSorted(s []int, q float64) float64 {
	if len(s) == 1 {
		return float64(s[0])
	}
	pos := q * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(s[lo]) + frac*float64(s[hi]-s[lo])
}

// Quantile returns the q-th quantile (0 <= q <= 1) of values.
func Quantile(values []int, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	q = math.Max(0, math.Min(1, q))
	return quantileSorted(sorted(values), q), nil
}

// Median returns the 0.5 quantile.
func Median(values []int) (float64, error) {
	return Quantile(values, quartileMid)
}

// Min returns the smallest observation.
func Min(values []int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return float64(m), nil
}

// Max returns the largest observation.
func Max(values []int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return float64(m), nil
}

// Mean returns the arithmetic mean.
func Mean(values []int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), nil
}

// Box computes a BoxSummary. Whiskers extend to the furthest observations
// within 1.5 IQR of the quartiles; anything beyond is an outlier.
func Box(values []int) (BoxSummary, error) {
	if len(values) == 0 {
		return BoxSummary{}, ErrEmpty
	}
	s := sorted(values)
	mean, _ := Mean(s)
	b := BoxSummary{
		Count:    len(s),
		Min:      float64(s[0]),
		Q1:       quantileSorted(s, quartileLow),
		Median:   quantileSorted(s, quartileMid),
		Q3:       quantileSorted(s, quartileHigh),
		Max:      float64(s[len(s)-1]),
		Mean:     mean,
		Outliers: []int{},
	}
	iqr := b.Q3 - b.Q1
	lowFence := b.Q1 - tukeyFactor*iqr
	highFence := b.Q3 + tukeyFactor*iqr

	b.LowerWhisker = b.Q1
	b.UpperWhisker = b.Q3
	for _, v := range s {
		f := float64(v)
		if f < lowFence || f > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if f < b.LowerWhisker {
			b.LowerWhisker = f
		}
		if f > b.UpperWhisker {
			b.UpperWhisker = f
		}
	}
	return b, nil
}
