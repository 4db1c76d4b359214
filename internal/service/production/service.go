// Package production records daily production: it drives edit sessions
// over a day's line items, keeps derived unit totals consistent and
// regenerates the report text on every save.
package production

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

type recordRepo interface {
	ListAll(ctx context.Context) ([]domain.ProductionRecord, error)
	Get(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error)
	Upsert(ctx context.Context, rec domain.ProductionRecord) error
	Delete(ctx context.Context, date domain.Date) error
}

type productRepo interface {
	Insert(ctx context.Context, name domain.ProductName) (bool, error)
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type unitResolver interface {
	ResolveTotalUnits(ctx context.Context, product domain.ProductName, quantity int, mt domain.MeasurementType) (domain.Units, error)
	HasConfigurationFor(ctx context.Context, product domain.ProductName, mt domain.MeasurementType) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements production recording.
type Service struct {
	records    recordRepo
	products   productRepo
	categories categoryRepo
	resolver   unitResolver
	tx         txManager
	sessions   *Registry
	log        *slog.Logger
}

// NewService creates a new Production service. sessions owns the open
// edit sessions; the caller stops it.
func NewService(
	log *slog.Logger,
	records recordRepo,
	products productRepo,
	categories categoryRepo,
	resolver unitResolver,
	tx txManager,
	sessions *Registry,
) *Service {
	return &Service{
		records:    records,
		products:   products,
		categories: categories,
		resolver:   resolver,
		tx:         tx,
		sessions:   sessions,
		log:        log.With("service", "production"),
	}
}
