package domain

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one production entry of a day.
//
// For board and mold items TotalUnits is quantity times the product's
// factor at the time of recording. For unit items it always equals
// Quantity.
type LineItem struct {
	ID              uuid.UUID
	Product         ProductName
	Category        string
	Quantity        int
	MeasurementType MeasurementType
	TotalUnits      Units
}

// WithQuantity returns a copy of the item with a new quantity. The total
// is rescaled with the per-unit ratio implied by the stored total
// (round(total/quantity)), not with the product's current factor, so
// historical records keep the factor they were recorded with.
//
// A board or mold item with no stored total gets total = q. This is the
// long-standing history-edit fallback and is kept on purpose, even though
// such an item had an undefined total before the edit.
func (i LineItem) WithQuantity(q int) LineItem {
	out := i
	out.Quantity = q

	if !i.MeasurementType.NeedsFactor() {
		out.TotalUnits = Some(q)
		return out
	}

	total, ok := i.TotalUnits.Get()
	if !ok || i.Quantity <= 0 {
		out.TotalUnits = Some(q)
		return out
	}

	out.TotalUnits = Some(roundRatio(total, i.Quantity) * q)
	return out
}

// roundRatio is round(total/quantity) with halves rounded up, for
// non-negative total and positive quantity.
func roundRatio(total, quantity int) int {
	return (2*total + quantity) / (2 * quantity)
}

// ProductionRecord is the production of one calendar day.
type ProductionRecord struct {
	Date       Date
	Items      []LineItem
	ReportText string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
