// Package attendance keeps the day-laborer roster and their daily
// attendance, and aggregates it into month grids.
package attendance

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

type workerRepo interface {
	List(ctx context.Context) ([]domain.Worker, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Worker, error)
	Insert(ctx context.Context, name string) (*domain.Worker, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attendanceRepo interface {
	Upsert(ctx context.Context, workerID uuid.UUID, date domain.Date, status domain.AttendanceStatus) (*domain.AttendanceRecord, error)
	ListInRange(ctx context.Context, from, to domain.Date) ([]domain.AttendanceRecord, error)
	DeleteBefore(ctx context.Context, cutoff domain.Date) (int64, error)
}

// Service implements worker and attendance operations.
type Service struct {
	workers    workerRepo
	attendance attendanceRepo
	log        *slog.Logger
}

// NewService creates a new Attendance service.
func NewService(log *slog.Logger, workers workerRepo, attendance attendanceRepo) *Service {
	return &Service{
		workers:    workers,
		attendance: attendance,
		log:        log.With("service", "attendance"),
	}
}
