package domain

import (
	"slices"
	"time"
)

// Category is a production line (a crew or a process) that items are
// recorded under. Protected categories are seeded by the system and
// cannot be deleted.
type Category struct {
	ID               string
	Name             string
	MeasurementTypes []MeasurementType
	Description      string
	Protected        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Supports reports whether items of type mt may be recorded in c.
func (c Category) Supports(mt MeasurementType) bool {
	return slices.Contains(c.MeasurementTypes, mt)
}

// CanonicalMeasurementTypes de-duplicates types and orders them
// board, mold, unit. Invalid values are dropped.
func CanonicalMeasurementTypes(types []MeasurementType) []MeasurementType {
	out := make([]MeasurementType, 0, 3)
	for _, mt := range []MeasurementType{MeasurementBoard, MeasurementMold, MeasurementUnit} {
		if slices.Contains(types, mt) {
			out = append(out, mt)
		}
	}
	return out
}

// FindCategory looks a category up by id or by display name.
func FindCategory(categories []Category, ref string) (Category, bool) {
	for _, c := range categories {
		if c.ID == ref || c.Name == ref {
			return c, true
		}
	}
	return Category{}, false
}
