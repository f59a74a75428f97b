// Package lifespan derives birth year, death year and age from the raw date
// columns. Parsing never fails: anything unreadable becomes a missing value.
package lifespan

import (
	"strconv"
	"strings"

	"github.com/okian/laureates/internal/domain/model"
	"github.com/okian/laureates/internal/domain/types"
)

// Date layouts as found in the dataset.
const (
	birthSep = "-" // YYYY-MM-DD
	deathSep = "/" // DD/MM/YYYY

	dateParts = 3
)

// ParseBirthYear extracts the year from a YYYY-MM-DD string.
func ParseBirthYear(s string) types.NullInt {
	parts, ok := split(s, birthSep)
	if !ok {
		return types.Missing
	}
	return types.Int(parts[0])
}

// ParseDeathYear extracts the year from a DD/MM/YYYY string.
func ParseDeathYear(s string) types.NullInt {
	parts, ok := split(s, deathSep)
	if !ok {
		return types.Missing
	}
	return types.Int(parts[2])
}

// split requires exactly three unsigned integer components.
func split(s, sep string) ([dateParts]int, bool) {
	var out [dateParts]int
	fields := strings.Split(strings.TrimSpace(s), sep)
	if len(fields) != dateParts {
		return out, false
	}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.ContainsAny(f, "+-") {
			return out, false
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// Derive returns rec with BirthYear, DeathYear and Age filled in.
func Derive(rec model.Laureate) model.Laureate {
	rec.BirthYear = ParseBirthYear(rec.BirthDate)
	rec.DeathYear = ParseDeathYear(rec.DeathDate)
	rec.Age = types.Sub(rec.DeathYear, rec.BirthYear)
	return rec
}

// DeriveAll applies Derive to every record and returns a new slice.
func DeriveAll(recs []model.Laureate) []model.Laureate {
	out := make([]model.Laureate, len(recs))
	for i, r := range recs {
		out[i] = Derive(r)
	}
	return out
}
