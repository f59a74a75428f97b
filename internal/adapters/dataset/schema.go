package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/model"
	"github.com/okian/laureates/internal/domain/types"
)

// Column names as they appear in the header after normalization.
const (
	ColYear         = "Year"
	ColCategory     = "Category"
	ColBirthCountry = "Birth_Country"
	ColBirthDate    = "Birth_Date"
	ColDeathDate    = "Death_Date"
	ColFullName     = "Full_Name"
	ColSex          = "Sex"
	ColOrganization = "Organization_Name"
)

var requiredColumns = [...]string{ColCategory, ColBirthCountry, ColBirthDate, ColDeathDate, ColYear}

var optionalColumns = [...]string{ColFullName, ColSex, ColOrganization}

// normalizeHeader trims a header cell and folds inner spaces to underscores,
// so "Birth Country" and "Birth_Country" name the same column.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), "_"))
}

// schema maps each known column to its index in a row; -1 when absent.
type schema map[string]int

func newSchema(header []string) (schema, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := pos[key]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, h)
		}
		pos[key] = i
	}
	s := make(schema, len(requiredColumns)+len(optionalColumns))
	var missing []string
	for _, c := range requiredColumns {
		i, ok := pos[normalizeHeader(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		s[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	for _, c := range optionalColumns {
		i, ok := pos[normalizeHeader(c)]
		if !ok {
			i = -1
		}
		s[c] = i
	}
	return s, nil
}

func (s schema) get(row []string, col string) string {
	i := s[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Prize years outside this window are rejected as schema violations.
const (
	minPrizeYear = 1000
	maxPrizeYear = 9999
)

// parseYear accepts an integer or an integral float ("1901.0") within
// [minPrizeYear, maxPrizeYear]; empty is missing.
func parseYear(raw string) (types.NullInt, error) {
	if raw == "" {
		return types.Missing, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) || f < minPrizeYear || f > maxPrizeYear {
		return types.Missing, fmt.Errorf("year %q is not an integer in [%d, %d]", raw, minPrizeYear, maxPrizeYear)
	}
	return types.Int(int(f)), nil
}

// record converts a row into a typed laureate. The returned bool reports that
// the category used an alias label.
func (s schema) record(row []string) (model.Laureate, bool, error) {
	rawCat := s.get(row, ColCategory)
	cat, err := category.Parse(rawCat)
	if err != nil {
		return model.Laureate{}, false, err
	}
	year, err := parseYear(s.get(row, ColYear))
	if err != nil {
		return model.Laureate{}, false, err
	}
	return model.Laureate{
		Year:         year,
		Category:     cat,
		FullName:     s.get(row, ColFullName),
		Sex:          s.get(row, ColSex),
		Organization: s.get(row, ColOrganization),
		BirthCountry: s.get(row, ColBirthCountry),
		BirthDate:    s.get(row, ColBirthDate),
		DeathDate:    s.get(row, ColDeathDate),
	}, category.IsAlias(rawCat), nil
}
