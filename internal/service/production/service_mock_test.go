package production

import (
	"context"
	"sync"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

var (
	_ recordRepo   = &recordRepoMock{}
	_ productRepo  = &productRepoMock{}
	_ categoryRepo = &categoryRepoMock{}
	_ unitResolver = &unitResolverMock{}
	_ txManager    = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// recordRepoMock
// ---------------------------------------------------------------------------

type recordRepoMock struct {
	ListAllFunc func(ctx context.Context) ([]domain.ProductionRecord, error)
	GetFunc     func(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error)
	UpsertFunc  func(ctx context.Context, rec domain.ProductionRecord) error
	DeleteFunc  func(ctx context.Context, date domain.Date) error

	mu    sync.RWMutex
	calls struct {
		ListAll int
		Get     []domain.Date
		Upsert  []domain.ProductionRecord
		Delete  []domain.Date
	}
}

func (m *recordRepoMock) ListAll(ctx context.Context) ([]domain.ProductionRecord, error) {
	if m.ListAllFunc == nil {
		panic("recordRepoMock.ListAllFunc: method is nil but recordRepo.ListAll was just called")
	}
	m.mu.Lock()
	m.calls.ListAll++
	m.mu.Unlock()
	return m.ListAllFunc(ctx)
}

func (m *recordRepoMock) Get(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error) {
	if m.GetFunc == nil {
		panic("recordRepoMock.GetFunc: method is nil but recordRepo.Get was just called")
	}
	m.mu.Lock()
	m.calls.Get = append(m.calls.Get, date)
	m.mu.Unlock()
	return m.GetFunc(ctx, date)
}

func (m *recordRepoMock) Upsert(ctx context.Context, rec domain.ProductionRecord) error {
	if m.UpsertFunc == nil {
		panic("recordRepoMock.UpsertFunc: method is nil but recordRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert = append(m.calls.Upsert, rec)
	m.mu.Unlock()
	return m.UpsertFunc(ctx, rec)
}

func (m *recordRepoMock) Delete(ctx context.Context, date domain.Date) error {
	if m.DeleteFunc == nil {
		panic("recordRepoMock.DeleteFunc: method is nil but recordRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, date)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, date)
}

func (m *recordRepoMock) UpsertCalls() []domain.ProductionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

func (m *recordRepoMock) DeleteCalls() []domain.Date {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Delete
}

// ---------------------------------------------------------------------------
// productRepoMock
// ---------------------------------------------------------------------------

type productRepoMock struct {
	InsertFunc func(ctx context.Context, name domain.ProductName) (bool, error)

	mu    sync.RWMutex
	calls struct {
		Insert []domain.ProductName
	}
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

func (m *productRepoMock) InsertCalls() []domain.ProductName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Insert
}

// ---------------------------------------------------------------------------
// categoryRepoMock
// ---------------------------------------------------------------------------

type categoryRepoMock struct {
	ListFunc func(ctx context.Context) ([]domain.Category, error)
}

func (m *categoryRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc == nil {
		panic("categoryRepoMock.ListFunc: method is nil but categoryRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

// ---------------------------------------------------------------------------
// unitResolverMock
// ---------------------------------------------------------------------------

type unitResolverMock struct {
	ResolveTotalUnitsFunc   func(ctx context.Context, product domain.ProductName, quantity int, mt domain.MeasurementType) (domain.Units, error)
	HasConfigurationForFunc func(ctx context.Context, product domain.ProductName, mt domain.MeasurementType) (bool, error)

	mu    sync.RWMutex
	calls struct {
		ResolveTotalUnits int
	}
}

func (m *unitResolverMock) ResolveTotalUnits(ctx context.Context, product domain.ProductName, quantity int, mt domain.MeasurementType) (domain.Units, error) {
	if m.ResolveTotalUnitsFunc == nil {
		panic("unitResolverMock.ResolveTotalUnitsFunc: method is nil but unitResolver.ResolveTotalUnits was just called")
	}
	m.mu.Lock()
	m.calls.ResolveTotalUnits++
	m.mu.Unlock()
	return m.ResolveTotalUnitsFunc(ctx, product, quantity, mt)
}

func (m *unitResolverMock) HasConfigurationFor(ctx context.Context, product domain.ProductName, mt domain.MeasurementType) (bool, error) {
	if m.HasConfigurationForFunc == nil {
		panic("unitResolverMock.HasConfigurationForFunc: method is nil but unitResolver.HasConfigurationFor was just called")
	}
	return m.HasConfigurationForFunc(ctx, product, mt)
}

func (m *unitResolverMock) ResolveTotalUnitsCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.ResolveTotalUnits
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

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
