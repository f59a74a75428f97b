// Package ranking computes frequency rankings of categorical values and
// assigns bar colors for display.
package ranking

import (
	"fmt"
	"sort"
	"strings"
)

// Bounds for the number of ranked entries a caller may request.
const (
	MinN = 1
	MaxN = 10
)

var defaultPalette = [...]string{
	"#19376D", "#576CBC", "#A5D7E8", "#66347F", "#9E4784",
	"#D27685", "#D4ADFC", "#F2F7A1", "#FB2576", "#E94560",
}

// DefaultPalette returns the built-in ten-color bar palette.
func DefaultPalette() []string {
	out := make([]string, len(defaultPalette))
	copy(out, defaultPalette[:])
	return out
}

// Count is the number of occurrences of one distinct value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Bar is a ranked value ready for a bar chart.
type Bar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Counts tallies values, skipping empty ones. The result is ordered by count
// descending; equal counts keep the order in which values first appeared.
func Counts(values []string) []Count {
	index := make(map[string]int)
	var out []Count
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(out)
			index[v] = i
			out = append(out, Count{Value: v})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Total returns the sum of all counts.
func Total(counts []Count) int {
	t := 0
	for _, c := range counts {
		t += c.Count
	}
	return t
}

// TopN returns the n largest entries of counts, which must already be ordered
// by Counts. Entries tied with the n-th count are all kept, so the result may
// be longer than n.
func TopN(counts []Count, n int) ([]Count, error) {
	if n < MinN || n > MaxN {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidN, n, MinN, MaxN)
	}
	if n >= len(counts) {
		return clone(counts), nil
	}
	threshold := counts[n-1].Count
	end := n
	for end < len(counts) && counts[end].Count == threshold {
		end++
	}
	return clone(counts[:end]), nil
}

// Bars pairs each count with a palette color, cycling the palette when there
// are more entries than colors. An empty palette falls back to the default.
func Bars(counts []Count, palette []string) []Bar {
	if len(palette) == 0 {
		palette = defaultPalette[:]
	}
	out := make([]Bar, len(counts))
	for i, c := range counts {
		out[i] = Bar{Label: c.Value, Count: c.Count, Color: palette[i%len(palette)]}
	}
	return out
}

func clone(c []Count) []Count {
	out := make([]Count, len(c))
	copy(out, c)
	return out
}
