package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date format used for keys and on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar day without time or zone. It is comparable and safe
// to use as a map key.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate builds a Date. Out-of-range values are normalized the way
// time.Date normalizes them (Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string { return d.t.Format(DateLayout) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+n)
}

// FirstOfMonth returns day 1 of d's month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return NewDate(d.Year(), d.Month()+1, 0)
}

// DaysInMonth returns the length of d's month (28 to 31).
func (d Date) DaysInMonth() int {
	return d.LastOfMonth().Day()
}

// AddMonths moves n months from the first of d's month. The result is
// always day 1, so a 31st never spills into the following month.
func (d Date) AddMonths(n int) Date {
	return NewDate(d.Year(), d.Month()+time.Month(n), 1)
}

// MarshalText implements encoding.TextMarshaler (ISO format).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (ISO format).
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ---------------------------------------------------------------------------
// pt-BR display formats
// ---------------------------------------------------------------------------

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayAbbrevPT = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// FormatBR returns "DD/MM/YYYY".
func (d Date) FormatBR() string { return d.t.Format("02/01/2006") }

// FormatLong returns "DD de <mês> de YYYY", e.g. "05 de março de 2025".
func (d Date) FormatLong() string {
	return fmt.Sprintf("%02d de %s de %d", d.Day(), monthNamesPT[d.Month()-1], d.Year())
}

// MonthTitle returns "<mês> de YYYY", e.g. "março de 2025".
func (d Date) MonthTitle() string {
	return fmt.Sprintf("%s de %d", monthNamesPT[d.Month()-1], d.Year())
}

// DayHeader returns the abbreviated weekday and day of month, e.g. "Seg 3".
func (d Date) DayHeader() string {
	return fmt.Sprintf("%s %d", weekdayAbbrevPT[d.Weekday()], d.Day())
}
