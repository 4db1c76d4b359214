// Package conversion resolves production quantities into base units using
// the stored per-product conversion factors.
package conversion

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// configSource looks up one product's configuration. A product without a
// stored configuration yields a wrapped domain.ErrNotFound.
type configSource interface {
	GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error)
}

// Resolver converts board and mold quantities into units.
type Resolver struct {
	configs configSource
}

// NewResolver creates a Resolver over configs.
func NewResolver(configs configSource) *Resolver {
	return &Resolver{configs: configs}
}

// ResolveTotalUnits returns the total base units for quantity of product
// in measurement type mt. Unit quantities resolve to themselves without a
// lookup. Board and mold quantities resolve to quantity*factor, or None
// when the product has no positive factor for mt.
//
// product must already be normalized.
func (r *Resolver) ResolveTotalUnits(ctx context.Context, product domain.ProductName, quantity int, mt domain.MeasurementType) (domain.Units, error) {
	if !mt.NeedsFactor() {
		return domain.Some(quantity), nil
	}

	cfg, err := r.lookup(ctx, product)
	if err != nil {
		return domain.None[int](), err
	}
	return cfg.TotalUnits(quantity, mt), nil
}

// HasConfigurationFor reports whether quantities of mt can be converted for
// product. It is always true for unit.
func (r *Resolver) HasConfigurationFor(ctx context.Context, product domain.ProductName, mt domain.MeasurementType) (bool, error) {
	if !mt.NeedsFactor() {
		return true, nil
	}

	cfg, err := r.lookup(ctx, product)
	if err != nil {
		return false, err
	}
	return cfg.HasFactorFor(mt), nil
}

// lookup treats a missing configuration as an empty one.
func (r *Resolver) lookup(ctx context.Context, product domain.ProductName) (domain.ProductConfig, error) {
	cfg, err := r.configs.GetForProduct(ctx, product)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ProductConfig{Product: product}, nil
	}
	if err != nil {
		return domain.ProductConfig{}, fmt.Errorf("lookup config for %s: %w", product, err)
	}
	return *cfg, nil
}
