package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// MarkAttendance records a worker's status for a day, replacing any status
// already recorded for that pair.
func (s *Service) MarkAttendance(ctx context.Context, in MarkInput) (*domain.AttendanceRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.attendance.Upsert(ctx, in.WorkerID, in.Date, in.Status)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.log.InfoContext(ctx, "attendance marked",
		slog.String("worker_id", in.WorkerID.String()),
		slog.String("date", in.Date.String()),
		slog.String("status", in.Status.String()),
	)
	return rec, nil
}

// PruneBefore deletes attendance recorded before cutoff and returns how
// many records were removed.
func (s *Service) PruneBefore(ctx context.Context, cutoff domain.Date) (int64, error) {
	if cutoff.IsZero() {
		return 0, domain.NewValidationError("cutoff", "required")
	}

	n, err := s.attendance.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune attendance: %w", err)
	}

	s.log.InfoContext(ctx, "attendance pruned",
		slog.String("cutoff", cutoff.String()),
		slog.Int64("deleted", n),
	)
	return n, nil
}
