package attendance

import (
	"context"
	"fmt"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// MonthView is the full-month attendance history.
type MonthView struct {
	Month     domain.Date // first day of the month
	Title     string      // "março de 2025"
	Headers   []string    // one per day, "Seg 3"
	Matrix    MonthMatrix
	Summaries []WorkerSummary
	Previous  domain.Date
	Next      domain.Date
}

// MonthView builds the grid of anchor's month shifted by shift months.
// The grid is rebuilt from the store on every call.
func (s *Service) MonthView(ctx context.Context, anchor domain.Date, shift int) (*MonthView, error) {
	if anchor.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}
	month := ShiftMonth(anchor, shift)
	days := EnumerateMonthDays(month)

	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	records, err := s.attendance.ListInRange(ctx, days[0], days[len(days)-1])
	if err != nil {
		return nil, fmt.Errorf("list attendance %s: %w", month.Time().Format("2006-01"), err)
	}

	headers := make([]string, len(days))
	for i, d := range days {
		headers[i] = d.DayHeader()
	}

	matrix := BuildMonthMatrix(workers, days, records)
	return &MonthView{
		Month:     month,
		Title:     month.MonthTitle(),
		Headers:   headers,
		Matrix:    matrix,
		Summaries: Summarize(matrix),
		Previous:  ShiftMonth(month, -1),
		Next:      ShiftMonth(month, 1),
	}, nil
}

// DayEntry is one worker's status on the marking screen.
type DayEntry struct {
	Worker domain.Worker
	Status Cell
}

// DayView lists every worker with the status recorded on date.
func (s *Service) DayView(ctx context.Context, date domain.Date) ([]DayEntry, error) {
	if date.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	records, err := s.attendance.ListInRange(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance %s: %w", date, err)
	}

	entries := make([]DayEntry, len(workers))
	for i, w := range workers {
		entries[i] = DayEntry{Worker: w}
		if st, ok := StatusFor(w.ID, date, records); ok {
			entries[i].Status = domain.Some(st)
		}
	}
	return entries, nil
}
