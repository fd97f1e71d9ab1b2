package calendar

import (
	"fmt"
	"time"
)

type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) LastDay() Date {
	return m.FirstDay().AddDays(m.Days() - 1)
}

// Days returns the real length of the month (28 to 31).
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) Period() Period {
	return NewInclusivePeriod(m.FirstDay(), m.LastDay())
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Period is a half-open range of nights [Start, End).
type Period struct {
	Start Date
	End   Date
}

// NewInclusivePeriod covers every night from first through last.
func NewInclusivePeriod(first, last Date) Period {
	return Period{Start: first, End: last.AddDays(1)}
}

func (p Period) Days() int {
	return max(0, DaysBetween(p.Start, p.End))
}

// OverlapNights counts the nights of [start, end) that fall inside p.
func (p Period) OverlapNights(start, end Date) int {
	from := MaxDate(start, p.Start)
	to := MinDate(end, p.End)
	return max(0, DaysBetween(from, to))
}

func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// Each calls fn for every night in the period, in order.
func (p Period) Each(fn func(Date)) {
	for d := p.Start; d.Before(p.End); d = d.AddDays(1) {
		fn(d)
	}
}
