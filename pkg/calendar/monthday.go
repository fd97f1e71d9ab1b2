package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MonthDay is a zero-padded "MM-DD" marker without a year. Zero padding makes
// lexicographic order match chronological order within a year.
type MonthDay string

var monthDayRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

var daysPerMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Valid reports whether m names a real day in some year. 02-29 is accepted.
func (m MonthDay) Valid() bool {
	s := string(m)
	if !monthDayRegex.MatchString(s) {
		return false
	}
	month, _ := strconv.Atoi(s[:2])
	day, _ := strconv.Atoi(s[3:])
	return day <= daysPerMonth[month-1]
}

func ParseMonthDay(s string) (MonthDay, error) {
	m := NormalizeMonthDay(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid month-day %q, expected MM-DD", s)
	}
	return m, nil
}

// NormalizeMonthDay pads loose input such as "6-1" to "06-01". Input that is
// not two dash-separated numbers is returned trimmed but otherwise unchanged.
func NormalizeMonthDay(s string) MonthDay {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthDay(s)
	}
	month, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errM != nil || errD != nil || month < 0 || day < 0 {
		return MonthDay(s)
	}
	return MonthDay(fmt.Sprintf("%02d-%02d", month, day))
}

// InRange tests m against the inclusive range [start, end]. When start sorts
// after end the range wraps the year boundary (e.g. 12-15 through 01-15).
func InRange(start, end, m MonthDay) bool {
	if start > end {
		return m >= start || m <= end
	}
	return start <= m && m <= end
}
