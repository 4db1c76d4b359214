// Package catalog manages products, their conversion factors and the
// production categories.
package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, name domain.ProductName) (bool, error)
	Delete(ctx context.Context, name domain.ProductName) error
	Search(ctx context.Context, term string, limit int) ([]domain.ProductName, error)
}

type configRepo interface {
	GetAll(ctx context.Context) ([]domain.ProductConfig, error)
	GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error)
	Upsert(ctx context.Context, cfg domain.ProductConfig) (*domain.ProductConfig, error)
	ListProductsWithoutConfig(ctx context.Context) ([]domain.ProductName, error)
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements catalog management.
type Service struct {
	products    productRepo
	configs     configRepo
	categories  categoryRepo
	tx          txManager
	log         *slog.Logger
	searchLimit int
}

// NewService creates a new Catalog service. searchLimit caps product
// search suggestions.
func NewService(
	log *slog.Logger,
	products productRepo,
	configs configRepo,
	categories categoryRepo,
	tx txManager,
	searchLimit int,
) *Service {
	return &Service{
		products:    products,
		configs:     configs,
		categories:  categories,
		tx:          tx,
		log:         log.With("service", "catalog"),
		searchLimit: searchLimit,
	}
}
