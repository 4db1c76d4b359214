package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Name is the identity.
type Product struct {
	ID        uuid.UUID
	Name      ProductName
	CreatedAt time.Time
}

// ProductConfig holds the conversion factors of one product.
// An absent factor means the product is not configured for that type.
type ProductConfig struct {
	ProductID     uuid.UUID
	Product       ProductName
	UnitsPerBoard Factor
	UnitsPerMold  Factor
	UpdatedAt     time.Time
}

// FactorFor returns the factor used for mt. Unit quantities are already
// base units and have no factor.
func (c ProductConfig) FactorFor(mt MeasurementType) Factor {
	switch mt {
	case MeasurementBoard:
		return c.UnitsPerBoard
	case MeasurementMold:
		return c.UnitsPerMold
	}
	return None[int]()
}

// HasFactorFor reports whether quantities of type mt can be converted.
func (c ProductConfig) HasFactorFor(mt MeasurementType) bool {
	if !mt.NeedsFactor() {
		return true
	}
	return c.FactorFor(mt).IsSome()
}

// TotalUnits converts quantity to base units. Board and mold quantities
// without a configured factor are unresolvable and yield None.
func (c ProductConfig) TotalUnits(quantity int, mt MeasurementType) Units {
	if !mt.NeedsFactor() {
		return Some(quantity)
	}
	f, ok := c.FactorFor(mt).Get()
	if !ok || f <= 0 {
		return None[int]()
	}
	return Some(quantity * f)
}

// IsEmpty reports whether no factor at all is configured.
func (c ProductConfig) IsEmpty() bool {
	return !c.UnitsPerBoard.IsSome() && !c.UnitsPerMold.IsSome()
}
