package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/model"
)

// Column keys accepted by Store.Column.
const (
	ColumnBirthCountry = "birth_country"
	ColumnCategory     = "category"
	ColumnSex          = "sex"
	ColumnOrganization = "organization_name"
)

// Store is an immutable snapshot of the loaded dataset. Every accessor
// returns fresh slices, so callers cannot change what later calls observe.
type Store struct {
	id       string
	source   string
	loadedAt time.Time
	aliased  int

	records []model.Laureate
	byAge   []int // record indices ordered by age asc, missing last, stable
	missing int
}

// NewStore builds a store from records whose derived fields are already set.
func NewStore(records []model.Laureate) *Store {
	return newStore(records, "", 0)
}

func newStore(records []model.Laureate, source string, aliased int) *Store {
	s := &Store{
		id:       uuid.NewString(),
		source:   source,
		loadedAt: time.Now().UTC(),
		aliased:  aliased,
		records:  make([]model.Laureate, len(records)),
		byAge:    make([]int, len(records)),
	}
	copy(s.records, records)
	for i, r := range s.records {
		s.byAge[i] = i
		if !r.Age.Valid {
			s.missing++
		}
	}
	sort.SliceStable(s.byAge, func(a, b int) bool {
		ra, rb := s.records[s.byAge[a]].Age, s.records[s.byAge[b]].Age
		if ra.Valid != rb.Valid {
			return ra.Valid
		}
		return ra.Value < rb.Value
	})
	return s
}

// ID identifies this load; a restart yields a new ID.
func (s *Store) ID() string { return s.id }

// Source is the file path the store was read from, if any.
func (s *Store) Source() string { return s.source }

// LoadedAt is when the store was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// Len is the number of records.
func (s *Store) Len() int { return len(s.records) }

// Aliased is how many rows used a non-canonical category label.
func (s *Store) Aliased() int { return s.aliased }

// MissingAges is how many records have no derivable age.
func (s *Store) MissingAges() int { return s.missing }

// Records returns a copy of every record in file order.
func (s *Store) Records() []model.Laureate {
	out := make([]model.Laureate, len(s.records))
	copy(out, s.records)
	return out
}

// Column returns the raw values of a categorical column in file order.
func (s *Store) Column(name string) ([]string, error) {
	var get func(model.Laureate) string
	switch normalizeHeader(name) {
	case ColumnBirthCountry:
		get = func(r model.Laureate) string { return r.BirthCountry }
	case ColumnCategory:
		get = func(r model.Laureate) string { return string(r.Category) }
	case ColumnSex:
		get = func(r model.Laureate) string { return r.Sex }
	case ColumnOrganization:
		get = func(r model.Laureate) string { return r.Organization }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = get(r)
	}
	return out, nil
}

// AgesByCategory groups the valid ages by category. Records without an age
// are left out.
func (s *Store) AgesByCategory() map[category.Category][]int {
	out := make(map[category.Category][]int)
	for _, i := range s.byAge {
		r := s.records[i]
		if !r.Age.Valid {
			continue
		}
		out[r.Category] = append(out[r.Category], r.Age.Value)
	}
	return out
}

// AgePoints returns one point per record with an age, ordered by age.
// With filter set only that category is returned.
func (s *Store) AgePoints(filter *category.Category) []model.AgePoint {
	out := make([]model.AgePoint, 0, len(s.records)-s.missing)
	for _, i := range s.byAge {
		r := s.records[i]
		if !r.Age.Valid || (filter != nil && r.Category != *filter) {
			continue
		}
		out = append(out, model.AgePoint{Category: r.Category, Age: r.Age.Value})
	}
	return out
}

// Categories lists the categories present, in the order they first appear
// when the records are ordered by age.
func (s *Store) Categories() []category.Category {
	seen := make(map[category.Category]bool)
	var out []category.Category
	for _, i := range s.byAge {
		c := s.records[i].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// PrizeYears returns the smallest and largest prize year; ok is false when
// no record has one.
func (s *Store) PrizeYears() (minYear, maxYear int, ok bool) {
	for _, r := range s.records {
		if !r.Year.Valid {
			continue
		}
		if !ok || r.Year.Value < minYear {
			minYear = r.Year.Value
		}
		if !ok || r.Year.Value > maxYear {
			maxYear = r.Year.Value
		}
		ok = true
	}
	return minYear, maxYear, ok
}
