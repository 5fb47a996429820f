// Package calendar maps posts onto a monthly planning grid.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/grupo-nexus/planner/internal/model"
)

// GridSize is the fixed cell count of a month view: 6 rows of 7 days.
const GridSize = 42

// Date is a plain calendar date. Comparison is on components only; no
// timezone adjustment is ever applied.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"` // 1-12
	Year  int `json:"year"`
}

// Equal reports component-wise equality.
func (d Date) Equal(o Date) bool {
	return d.Day == o.Day && d.Month == o.Month && d.Year == o.Year
}

// String renders the date in the dd/mm/yyyy storage format.
func (d Date) String() string {
	var b strings.Builder
	if d.Day < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(d.Day))
	b.WriteByte('/')
	if d.Month < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(d.Month))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(d.Year))
	return b.String()
}

// DayCell is one slot of the 42-cell month grid.
type DayCell struct {
	Date    Date `json:"date"`
	InMonth bool `json:"inMonth"`
}

// ParseDate parses a stored dd/mm/yyyy string. It returns
// model.ErrMalformedDate unless the input splits into exactly three numeric
// parts; malformed posts are excluded from bucketing rather than guessed at.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, model.ErrMalformedDate
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, model.ErrMalformedDate
		}
		nums[i] = n
	}
	return Date{Day: nums[0], Month: nums[1], Year: nums[2]}, nil
}

// DaysInMonth returns the Gregorian day count of a month, leap years
// included. Month is 1-12.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid produces the 42-cell grid for a month: leading spillover
// from the previous month down to the first weekday (Sunday-based), all days
// of the target month, then next-month days up to the fixed size. The grid
// is a pure function of (year, month).
func BuildMonthGrid(year, month int) []DayCell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	startWeekday := int(first.Weekday()) // 0=Sunday

	cells := make([]DayCell, 0, GridSize)

	prev := first.AddDate(0, 0, -startWeekday)
	for i := 0; i < startWeekday; i++ {
		d := prev.AddDate(0, 0, i)
		cells = append(cells, DayCell{
			Date: Date{Day: d.Day(), Month: int(d.Month()), Year: d.Year()},
		})
	}

	days := DaysInMonth(year, month)
	for day := 1; day <= days; day++ {
		cells = append(cells, DayCell{
			Date:    Date{Day: day, Month: month, Year: year},
			InMonth: true,
		})
	}

	next := first.AddDate(0, 1, 0)
	for day := 0; len(cells) < GridSize; day++ {
		d := next.AddDate(0, 0, day)
		cells = append(cells, DayCell{
			Date: Date{Day: d.Day(), Month: int(d.Month()), Year: d.Year()},
		})
	}
	return cells
}

// PostsOnDate returns the posts whose stored date matches the given date
// exactly. The filter is stable (input order preserved) and never mutates
// its input. Posts with malformed dates are skipped.
func PostsOnDate(posts []model.Post, date Date) []model.Post {
	var out []model.Post
	for _, p := range posts {
		d, err := ParseDate(p.Date)
		if err != nil {
			continue
		}
		if d.Equal(date) {
			out = append(out, p)
		}
	}
	return out
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return Date{Day: now.Day(), Month: int(now.Month()), Year: now.Year()}
}

// IsToday reports whether date is the current local date.
func IsToday(date Date) bool {
	return date.Equal(Today())
}
