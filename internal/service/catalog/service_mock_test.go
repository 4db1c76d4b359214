package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

var (
	_ productRepo  = &productRepoMock{}
	_ configRepo   = &configRepoMock{}
	_ categoryRepo = &categoryRepoMock{}
	_ txManager    = &txManagerMock{}
)

type productRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Product, error)
	InsertFunc func(ctx context.Context, name domain.ProductName) (bool, error)
	DeleteFunc func(ctx context.Context, name domain.ProductName) error
	SearchFunc func(ctx context.Context, term string, limit int) ([]domain.ProductName, error)

	mu    sync.RWMutex
	calls struct {
		Insert []domain.ProductName
		Search []struct {
			Term  string
			Limit int
		}
	}
}

func (m *productRepoMock) List(ctx context.Context) ([]domain.Product, error) {
	if m.ListFunc == nil {
		panic("productRepoMock.ListFunc: method is nil but productRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *productRepoMock) Insert(ctx context.Context, name domain.ProductName) (bool, error) {
	if m.InsertFunc == nil {
		panic("productRepoMock.InsertFunc: method is nil but productRepo.Insert was just called")
	}
	m.mu.Lock()
	m.calls.Insert = append(m.calls.Insert, name)
	m.mu.Unlock()
	return m.InsertFunc(ctx, name)
}

func (m *productRepoMock) Delete(ctx context.Context, name domain.ProductName) error {
	if m.DeleteFunc == nil {
		panic("productRepoMock.DeleteFunc: method is nil but productRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, name)
}

func (m *productRepoMock) Search(ctx context.Context, term string, limit int) ([]domain.ProductName, error) {
	if m.SearchFunc == nil {
		panic("productRepoMock.SearchFunc: method is nil but productRepo.Search was just called")
	}
	m.mu.Lock()
	m.calls.Search = append(m.calls.Search, struct {
		Term  string
		Limit int
	}{term, limit})
	m.mu.Unlock()
	return m.SearchFunc(ctx, term, limit)
}

func (m *productRepoMock) InsertCalls() []domain.ProductName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Insert
}

func (m *productRepoMock) SearchCalls() []struct {
	Term  string
	Limit int
} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Search
}

type configRepoMock struct {
	GetAllFunc                    func(ctx context.Context) ([]domain.ProductConfig, error)
	GetForProductFunc             func(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error)
	UpsertFunc                    func(ctx context.Context, cfg domain.ProductConfig) (*domain.ProductConfig, error)
	ListProductsWithoutConfigFunc func(ctx context.Context) ([]domain.ProductName, error)

	mu    sync.RWMutex
	calls struct {
		Upsert []domain.ProductConfig
	}
}

func (m *configRepoMock) GetAll(ctx context.Context) ([]domain.ProductConfig, error) {
	if m.GetAllFunc == nil {
		panic("configRepoMock.GetAllFunc: method is nil but configRepo.GetAll was just called")
	}
	return m.GetAllFunc(ctx)
}

func (m *configRepoMock) GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error) {
	if m.GetForProductFunc == nil {
		panic("configRepoMock.GetForProductFunc: method is nil but configRepo.GetForProduct was just called")
	}
	return m.GetForProductFunc(ctx, name)
}

func (m *configRepoMock) Upsert(ctx context.Context, cfg domain.ProductConfig) (*domain.ProductConfig, error) {
	if m.UpsertFunc == nil {
		panic("configRepoMock.UpsertFunc: method is nil but configRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, cfg)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, cfg)
}

func (m *configRepoMock) ListProductsWithoutConfig(ctx context.Context) ([]domain.ProductName, error) {
	if m.ListProductsWithoutConfigFunc == nil {
		panic("configRepoMock.ListProductsWithoutConfigFunc: method is nil but configRepo.ListProductsWithoutConfig was just called")
	}
	return m.ListProductsWithoutConfigFunc(ctx)
}

func (m *configRepoMock) UpsertCalls() []domain.ProductConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

type categoryRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Category, error)
	UpsertFunc func(ctx context.Context, c domain.Category) (*domain.Category, error)
	DeleteFunc func(ctx context.Context, id string) error

	mu    sync.RWMutex
	calls struct {
		Upsert []domain.Category
	}
}

func (m *categoryRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc == nil {
		panic("categoryRepoMock.ListFunc: method is nil but categoryRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *categoryRepoMock) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if m.UpsertFunc == nil {
		panic("categoryRepoMock.UpsertFunc: method is nil but categoryRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, c)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, c)
}

func (m *categoryRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc == nil {
		panic("categoryRepoMock.DeleteFunc: method is nil but categoryRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *categoryRepoMock) UpsertCalls() []domain.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}

func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}
