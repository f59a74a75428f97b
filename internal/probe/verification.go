package probe

import (
	"bytes"
	"fmt"
)

// VerifyRanking checks one /api/countries?top=n response against the
// keep-all ranking rules. full is the response for the largest N and is used
// to check that r is its prefix and that no tied value was cut off.
func VerifyRanking(n int, r, full Ranking) []string {
	var problems []string
	if r.N != n {
		problems = append(problems, fmt.Sprintf("n echoed as %d", r.N))
	}
	want := n
	if r.Distinct < want {
		want = r.Distinct
	}
	if len(r.Bars) < want {
		problems = append(problems, fmt.Sprintf("%d bars, want at least %d", len(r.Bars), want))
	}
	for i, b := range r.Bars {
		if b.Color == "" {
			problems = append(problems, fmt.Sprintf("bar %d (%s) has no color", i, b.Label))
		}
		if i > 0 && b.Count > r.Bars[i-1].Count {
			problems = append(problems, fmt.Sprintf("count increases at bar %d (%s)", i, b.Label))
		}
	}
	if len(r.Bars) > n {
		cut := r.Bars[n-1].Count
		for i := n; i < len(r.Bars); i++ {
			if r.Bars[i].Count != cut {
				problems = append(problems, fmt.Sprintf("bar %d (%s) beyond n is not tied with the cut-off", i, r.Bars[i].Label))
			}
		}
	}
	if len(r.Bars) > len(full.Bars) {
		problems = append(problems, fmt.Sprintf("%d bars exceed the %d of the widest ranking", len(r.Bars), len(full.Bars)))
		return problems
	}
	for i, b := range r.Bars {
		if full.Bars[i].Label != b.Label || full.Bars[i].Count != b.Count {
			problems = append(problems, fmt.Sprintf("bar %d (%s) differs from the widest ranking", i, b.Label))
			return problems
		}
	}
	if len(r.Bars) > 0 && len(full.Bars) > len(r.Bars) {
		next := full.Bars[len(r.Bars)]
		if next.Count == r.Bars[len(r.Bars)-1].Count {
			problems = append(problems, fmt.Sprintf("tied value %s was dropped", next.Label))
		}
	}
	return problems
}

// VerifyIdentical reports whether two responses to the same request match
// byte for byte.
func VerifyIdentical(a, b []byte) []string {
	if bytes.Equal(a, b) {
		return nil
	}
	return []string{fmt.Sprintf("responses differ (%d vs %d bytes)", len(a), len(b))}
}

// VerifySelection checks a decoded /api/select answer.
func VerifySelection(statistic, rank string, s Selection) []string {
	var problems []string
	if s.Category == "" {
		problems = append(problems, "no category selected")
	}
	if s.Statistic != statistic || s.Rank != rank {
		problems = append(problems, fmt.Sprintf("echoed %s/%s", s.Statistic, s.Rank))
	}
	return problems
}
