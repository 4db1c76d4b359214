package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// ListWorkers returns the roster ordered by name.
func (s *Service) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

// CreateWorker adds a worker to the roster.
func (s *Service) CreateWorker(ctx context.Context, name string) (*domain.Worker, error) {
	if err := validateWorkerName(name); err != nil {
		return nil, err
	}

	w, err := s.workers.Insert(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}

	s.log.InfoContext(ctx, "worker created",
		slog.String("worker_id", w.ID.String()),
		slog.String("name", w.Name),
	)
	return w, nil
}

// RenameWorker changes a worker's display name.
func (s *Service) RenameWorker(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error) {
	if err := validateWorkerName(name); err != nil {
		return nil, err
	}

	w, err := s.workers.Update(ctx, id, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("update worker %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "worker renamed",
		slog.String("worker_id", id.String()),
		slog.String("name", w.Name),
	)
	return w, nil
}

// DeleteWorker removes a worker and, by cascade, their attendance.
func (s *Service) DeleteWorker(ctx context.Context, id uuid.UUID) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete worker %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "worker deleted", slog.String("worker_id", id.String()))
	return nil
}
