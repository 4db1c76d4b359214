// Package dataloader provides per-request DataLoaders that batch the
// configuration lookups of a request into single SQL calls.
package dataloader

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type configRepo interface {
	GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error)
	GetForProducts(ctx context.Context, names []domain.ProductName) ([]domain.ProductConfig, error)
}

// Repos holds the repositories required by DataLoaders.
type Repos struct {
	Config configRepo
}

// Loaders contains the per-request DataLoaders. Created per-request via
// NewLoaders.
type Loaders struct {
	ConfigByProduct *dataloader.Loader[domain.ProductName, *domain.ProductConfig]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		ConfigByProduct: dataloader.NewBatchedLoader(
			newConfigBatchFn(repos.Config),
			dataloader.WithWait[domain.ProductName, *domain.ProductConfig](wait),
			dataloader.WithBatchCapacity[domain.ProductName, *domain.ProductConfig](maxBatch),
		),
	}
}

// newConfigBatchFn loads the configs of all keys with one query. Keys
// without a stored config resolve to a wrapped domain.ErrNotFound, like a
// single lookup would.
func newConfigBatchFn(repo configRepo) dataloader.BatchFunc[domain.ProductName, *domain.ProductConfig] {
	return func(ctx context.Context, keys []domain.ProductName) []*dataloader.Result[*domain.ProductConfig] {
		configs, err := repo.GetForProducts(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[*domain.ProductConfig], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[*domain.ProductConfig]{Error: err}
			}
			return results
		}

		byName := make(map[domain.ProductName]*domain.ProductConfig, len(configs))
		for i := range configs {
			byName[configs[i].Product] = &configs[i]
		}

		results := make([]*dataloader.Result[*domain.ProductConfig], len(keys))
		for i, key := range keys {
			if cfg, ok := byName[key]; ok {
				results[i] = &dataloader.Result[*domain.ProductConfig]{Data: cfg}
			} else {
				results[i] = &dataloader.Result[*domain.ProductConfig]{
					Error: fmt.Errorf("product_config %s: %w", key, domain.ErrNotFound),
				}
			}
		}
		return results
	}
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
func FromContext(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok && l != nil
}

// ---------------------------------------------------------------------------
// ConfigSource
// ---------------------------------------------------------------------------

// ConfigSource serves single-product config lookups. Inside an HTTP
// request it goes through the request's loader, so concurrent lookups
// share one query; elsewhere (CLI, tests) it calls the repository.
type ConfigSource struct {
	repo configRepo
}

// NewConfigSource creates a ConfigSource over repo.
func NewConfigSource(repo configRepo) *ConfigSource {
	return &ConfigSource{repo: repo}
}

// GetForProduct returns the config of one product.
func (s *ConfigSource) GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error) {
	if l, ok := FromContext(ctx); ok {
		return l.ConfigByProduct.Load(ctx, name)()
	}
	return s.repo.GetForProduct(ctx, name)
}
