package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	ListFunc           func(ctx context.Context) ([]domain.User, error)
	CreateFunc         func(ctx context.Context, u domain.User) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) error

	mu    sync.RWMutex
	calls struct {
		GetByEmail     []string
		Create         []domain.User
		UpdatePassword []string
	}
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	m.mu.Lock()
	m.calls.GetByEmail = append(m.calls.GetByEmail, email)
	m.mu.Unlock()
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *userRepoMock) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, u)
	m.mu.Unlock()
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	m.mu.Lock()
	m.calls.UpdatePassword = append(m.calls.UpdatePassword, hash)
	m.mu.Unlock()
	return m.UpdatePasswordFunc(ctx, id, hash)
}

func (m *userRepoMock) GetByEmailCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.GetByEmail
}

func (m *userRepoMock) CreateCalls() []domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}
