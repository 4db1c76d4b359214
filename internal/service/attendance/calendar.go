package attendance

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// EnumerateMonthDays returns every day of anchor's month in ascending
// order.
func EnumerateMonthDays(anchor domain.Date) []domain.Date {
	first := anchor.FirstOfMonth()
	n := first.DaysInMonth()

	days := make([]domain.Date, n)
	for i := range n {
		days[i] = first.AddDays(i)
	}
	return days
}

// ShiftMonth moves n months from date's month and returns the first day of
// the target month. Normalizing to day one first keeps Jan 31 + 1 month in
// February.
func ShiftMonth(date domain.Date, n int) domain.Date {
	return date.FirstOfMonth().AddMonths(n)
}

// StatusFor returns the status recorded for a worker on a date. ok is
// false when there is no record.
func StatusFor(workerID uuid.UUID, date domain.Date, records []domain.AttendanceRecord) (domain.AttendanceStatus, bool) {
	for _, r := range records {
		if r.WorkerID == workerID && r.Date == date {
			return r.Status, true
		}
	}
	return "", false
}

// Cell is one worker-day of a MonthMatrix. Status is None when nothing was
// recorded.
type Cell = domain.Optional[domain.AttendanceStatus]

// MonthMatrix is the worker x day attendance grid. Rows follow Workers,
// columns follow Days.
type MonthMatrix struct {
	Workers []domain.Worker
	Days    []domain.Date
	Rows    [][]Cell
}

type cellKey struct {
	worker uuid.UUID
	date   domain.Date
}

// BuildMonthMatrix cross-references records against every worker and day.
// Records for workers or days outside the grid are ignored.
func BuildMonthMatrix(workers []domain.Worker, days []domain.Date, records []domain.AttendanceRecord) MonthMatrix {
	index := make(map[cellKey]domain.AttendanceStatus, len(records))
	for _, r := range records {
		index[cellKey{r.WorkerID, r.Date}] = r.Status
	}

	rows := make([][]Cell, len(workers))
	for i, w := range workers {
		row := make([]Cell, len(days))
		for j, d := range days {
			if st, ok := index[cellKey{w.ID, d}]; ok {
				row[j] = domain.Some(st)
			}
		}
		rows[i] = row
	}

	return MonthMatrix{Workers: workers, Days: days, Rows: rows}
}

// WorkerSummary counts a worker's statuses over a month. DaysWorked counts
// a half day as 0.5.
type WorkerSummary struct {
	WorkerID   uuid.UUID
	Present    int
	HalfDay    int
	Absent     int
	DaysWorked float64
}

// Summarize totals every row of m.
func Summarize(m MonthMatrix) []WorkerSummary {
	out := make([]WorkerSummary, len(m.Workers))
	for i, w := range m.Workers {
		s := WorkerSummary{WorkerID: w.ID}
		for _, c := range m.Rows[i] {
			st, ok := c.Get()
			if !ok {
				continue
			}
			switch st {
			case domain.AttendancePresent:
				s.Present++
			case domain.AttendanceHalfDay:
				s.HalfDay++
			case domain.AttendanceAbsent:
				s.Absent++
			}
		}
		s.DaysWorked = float64(s.Present) + 0.5*float64(s.HalfDay)
		out[i] = s
	}
	return out
}
