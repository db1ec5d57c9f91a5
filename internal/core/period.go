package core

import (
	"fmt"
	"time"
)

// Period is a calendar year, or a single month of it when Month is non-zero.
type Period struct {
	Year  int
	Month int
}

func YearPeriod(year int) Period {
	return Period{Year: year}
}

func MonthPeriod(year, month int) Period {
	return Period{Year: year, Month: month}
}

func (p Period) IsMonth() bool {
	return p.Month != 0
}

func (p Period) Contains(d Date) bool {
	if d.Year() != p.Year {
		return false
	}
	return p.Month == 0 || d.Month() == p.Month
}

// String renders "2023" or "2023/1".
func (p Period) String() string {
	if p.IsMonth() {
		return fmt.Sprintf("%d/%d", p.Year, p.Month)
	}
	return fmt.Sprintf("%d", p.Year)
}

// Label renders "January 2023" for months and the bare year otherwise.
func (p Period) Label() string {
	if p.IsMonth() {
		return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
	}
	return fmt.Sprintf("%d", p.Year)
}

// MaxMonth is the last selectable month of year: December for past years,
// the current month otherwise.
func MaxMonth(year int, today Date) int {
	if year < today.Year() {
		return 12
	}
	return today.Month()
}
