package conversion

import (
	"context"
	"sync"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

var _ configSource = &configSourceMock{}

type configSourceMock struct {
	GetForProductFunc func(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error)

	calls struct {
		GetForProduct []struct {
			Ctx  context.Context
			Name domain.ProductName
		}
	}
	lockGetForProduct sync.RWMutex
}

func (mock *configSourceMock) GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error) {
	if mock.GetForProductFunc == nil {
		panic("configSourceMock.GetForProductFunc: method is nil but configSource.GetForProduct was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name domain.ProductName
	}{Ctx: ctx, Name: name}
	mock.lockGetForProduct.Lock()
	mock.calls.GetForProduct = append(mock.calls.GetForProduct, callInfo)
	mock.lockGetForProduct.Unlock()
	return mock.GetForProductFunc(ctx, name)
}

func (mock *configSourceMock) GetForProductCalls() []struct {
	Ctx  context.Context
	Name domain.ProductName
} {
	mock.lockGetForProduct.RLock()
	calls := mock.calls.GetForProduct
	mock.lockGetForProduct.RUnlock()
	return calls
}
