package attendance

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

var (
	_ workerRepo     = &workerRepoMock{}
	_ attendanceRepo = &attendanceRepoMock{}
)

type workerRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Worker, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.Worker, error)
	InsertFunc func(ctx context.Context, name string) (*domain.Worker, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		Insert []string
		Update []string
	}
}

func (m *workerRepoMock) List(ctx context.Context) ([]domain.Worker, error) {
	if m.ListFunc == nil {
		panic("workerRepoMock.ListFunc: method is nil but workerRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *workerRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	if m.GetFunc == nil {
		panic("workerRepoMock.GetFunc: method is nil but workerRepo.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *workerRepoMock) Insert(ctx context.Context, name string) (*domain.Worker, error) {
	if m.InsertFunc == nil {
		panic("workerRepoMock.InsertFunc: method is nil but workerRepo.Insert was just called")
	}
	m.mu.Lock()
	m.calls.Insert = append(m.calls.Insert, name)
	m.mu.Unlock()
	return m.InsertFunc(ctx, name)
}

func (m *workerRepoMock) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error) {
	if m.UpdateFunc == nil {
		panic("workerRepoMock.UpdateFunc: method is nil but workerRepo.Update was just called")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, name)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, name)
}

func (m *workerRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("workerRepoMock.DeleteFunc: method is nil but workerRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *workerRepoMock) InsertCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Insert
}

type attendanceRepoMock struct {
	UpsertFunc       func(ctx context.Context, workerID uuid.UUID, date domain.Date, status domain.AttendanceStatus) (*domain.AttendanceRecord, error)
	ListInRangeFunc  func(ctx context.Context, from, to domain.Date) ([]domain.AttendanceRecord, error)
	DeleteBeforeFunc func(ctx context.Context, cutoff domain.Date) (int64, error)

	mu    sync.RWMutex
	calls struct {
		Upsert      int
		ListInRange [][2]domain.Date
	}
}

func (m *attendanceRepoMock) Upsert(ctx context.Context, workerID uuid.UUID, date domain.Date, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	if m.UpsertFunc == nil {
		panic("attendanceRepoMock.UpsertFunc: method is nil but attendanceRepo.Upsert was just called")
	}
	m.mu.Lock()
	m.calls.Upsert++
	m.mu.Unlock()
	return m.UpsertFunc(ctx, workerID, date, status)
}

func (m *attendanceRepoMock) ListInRange(ctx context.Context, from, to domain.Date) ([]domain.AttendanceRecord, error) {
	if m.ListInRangeFunc == nil {
		panic("attendanceRepoMock.ListInRangeFunc: method is nil but attendanceRepo.ListInRange was just called")
	}
	m.mu.Lock()
	m.calls.ListInRange = append(m.calls.ListInRange, [2]domain.Date{from, to})
	m.mu.Unlock()
	return m.ListInRangeFunc(ctx, from, to)
}

func (m *attendanceRepoMock) DeleteBefore(ctx context.Context, cutoff domain.Date) (int64, error) {
	if m.DeleteBeforeFunc == nil {
		panic("attendanceRepoMock.DeleteBeforeFunc: method is nil but attendanceRepo.DeleteBefore was just called")
	}
	return m.DeleteBeforeFunc(ctx, cutoff)
}

func (m *attendanceRepoMock) UpsertCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Upsert
}

func (m *attendanceRepoMock) ListInRangeCalls() [][2]domain.Date {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.ListInRange
}
