// Package model contains domain models passed between layers.
package model

import (
	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/types"
)

// Laureate is one laureate-prize row of the dataset.
// Raw date strings are kept as read; the derived years are filled in once at load.
type Laureate struct {
	Year         types.NullInt     // prize year
	Category     category.Category // canonical prize category
	FullName     string            // optional column
	Sex          string            // optional column
	Organization string            // optional column
	BirthCountry string            // empty when unknown
	BirthDate    string            // YYYY-MM-DD
	DeathDate    string            // DD/MM/YYYY

	BirthYear types.NullInt
	DeathYear types.NullInt
	Age       types.NullInt // DeathYear - BirthYear; negative values are not corrected
}

// AgePoint is one observation for lifespan charts.
type AgePoint struct {
	Category category.Category `json:"category"`
	Age      int               `json:"age"`
}
