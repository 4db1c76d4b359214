package attendance

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

func TestEnumerateMonthDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		anchor domain.Date
		want   int
	}{
		{"january", domain.NewDate(2025, time.January, 17), 31},
		{"february", domain.NewDate(2025, time.February, 28), 28},
		{"leap february", domain.NewDate(2024, time.February, 1), 29},
		{"april", domain.NewDate(2025, time.April, 30), 30},
		{"century non-leap", domain.NewDate(2100, time.February, 10), 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			days := EnumerateMonthDays(tt.anchor)
			if len(days) != tt.want {
				t.Fatalf("len = %d, want %d", len(days), tt.want)
			}
			if days[0] != tt.anchor.FirstOfMonth() {
				t.Errorf("first = %s, want %s", days[0], tt.anchor.FirstOfMonth())
			}
			if days[len(days)-1] != tt.anchor.LastOfMonth() {
				t.Errorf("last = %s, want %s", days[len(days)-1], tt.anchor.LastOfMonth())
			}
			for i := 1; i < len(days); i++ {
				if days[i] != days[i-1].AddDays(1) {
					t.Fatalf("days[%d] = %s does not follow %s", i, days[i], days[i-1])
				}
			}
		})
	}
}

func TestShiftMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from domain.Date
		n    int
		want domain.Date
	}{
		{domain.NewDate(2025, time.January, 31), 1, domain.NewDate(2025, time.February, 1)},
		{domain.NewDate(2025, time.December, 15), 1, domain.NewDate(2026, time.January, 1)},
		{domain.NewDate(2025, time.January, 1), -1, domain.NewDate(2024, time.December, 1)},
		{domain.NewDate(2025, time.March, 31), -1, domain.NewDate(2025, time.February, 1)},
		{domain.NewDate(2025, time.May, 20), 0, domain.NewDate(2025, time.May, 1)},
		{domain.NewDate(2025, time.May, 20), -17, domain.NewDate(2023, time.December, 1)},
		{domain.NewDate(2025, time.May, 20), 24, domain.NewDate(2027, time.May, 1)},
	}
	for _, tt := range tests {
		if got := ShiftMonth(tt.from, tt.n); got != tt.want {
			t.Errorf("ShiftMonth(%s, %d) = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestShiftMonth_EveryMonthHasFullGrid(t *testing.T) {
	t.Parallel()

	start := domain.NewDate(2023, time.January, 31)
	for n := range 36 {
		month := ShiftMonth(start, n)
		days := EnumerateMonthDays(month)
		if days[0].Month() != days[len(days)-1].Month() {
			t.Fatalf("%s: grid spans two months", month)
		}
		if days[len(days)-1].AddDays(1).Day() != 1 {
			t.Fatalf("%s: grid stops before month end", month)
		}
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	w := uuid.New()
	d := domain.NewDate(2025, time.March, 3)
	records := []domain.AttendanceRecord{
		{WorkerID: w, Date: d, Status: domain.AttendanceHalfDay},
		{WorkerID: uuid.New(), Date: d.AddDays(1), Status: domain.AttendancePresent},
	}

	if st, ok := StatusFor(w, d, records); !ok || st != domain.AttendanceHalfDay {
		t.Errorf("StatusFor = (%s, %v), want (half_day, true)", st, ok)
	}
	if _, ok := StatusFor(w, d.AddDays(1), records); ok {
		t.Error("StatusFor found a record for another worker's day")
	}
}

func TestBuildMonthMatrix(t *testing.T) {
	t.Parallel()

	ana := domain.Worker{ID: uuid.New(), Name: "Ana"}
	beto := domain.Worker{ID: uuid.New(), Name: "Beto"}
	days := EnumerateMonthDays(domain.NewDate(2025, time.March, 1))

	records := []domain.AttendanceRecord{
		{WorkerID: ana.ID, Date: days[0], Status: domain.AttendancePresent},
		{WorkerID: ana.ID, Date: days[1], Status: domain.AttendanceHalfDay},
		{WorkerID: beto.ID, Date: days[30], Status: domain.AttendanceAbsent},
		{WorkerID: uuid.New(), Date: days[2], Status: domain.AttendancePresent},
		{WorkerID: ana.ID, Date: domain.NewDate(2025, time.April, 1), Status: domain.AttendancePresent},
	}

	m := BuildMonthMatrix([]domain.Worker{ana, beto}, days, records)

	if len(m.Rows) != 2 || len(m.Rows[0]) != 31 {
		t.Fatalf("matrix shape = %dx%d, want 2x31", len(m.Rows), len(m.Rows[0]))
	}

	type cell struct {
		row, col int
		want     domain.AttendanceStatus
	}
	set := []cell{
		{0, 0, domain.AttendancePresent},
		{0, 1, domain.AttendanceHalfDay},
		{1, 30, domain.AttendanceAbsent},
	}
	filled := 0
	for r := range m.Rows {
		for c := range m.Rows[r] {
			if _, ok := m.Rows[r][c].Get(); ok {
				filled++
			}
		}
	}
	if filled != len(set) {
		t.Errorf("filled cells = %d, want %d", filled, len(set))
	}
	for _, c := range set {
		if got, ok := m.Rows[c.row][c.col].Get(); !ok || got != c.want {
			t.Errorf("cell[%d][%d] = (%s, %v), want %s", c.row, c.col, got, ok, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	w := domain.Worker{ID: uuid.New()}
	days := EnumerateMonthDays(domain.NewDate(2025, time.February, 1))
	records := []domain.AttendanceRecord{
		{WorkerID: w.ID, Date: days[0], Status: domain.AttendancePresent},
		{WorkerID: w.ID, Date: days[1], Status: domain.AttendancePresent},
		{WorkerID: w.ID, Date: days[2], Status: domain.AttendanceHalfDay},
		{WorkerID: w.ID, Date: days[3], Status: domain.AttendanceAbsent},
	}

	got := Summarize(BuildMonthMatrix([]domain.Worker{w}, days, records))
	want := []WorkerSummary{{WorkerID: w.ID, Present: 2, HalfDay: 1, Absent: 1, DaysWorked: 2.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
