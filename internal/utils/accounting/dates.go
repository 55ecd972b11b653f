package accounting

import "time"

// DateLayout is the wire format for day-grain dates.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar day (in t's own location) and returns that day at
// midnight UTC. Two instants on the same local calendar day map to the same Day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a Day. Out-of-range values such as 2025-02-30 are rejected.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// DaysBetween returns the number of whole days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddDays shifts a Day by n days.
func AddDays(day time.Time, n int) time.Time {
	return Day(day).AddDate(0, 0, n)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts a Day by n months, clamping to the last day of the target month
// (Jan 31 + 1 month = Feb 28/29) instead of overflowing the way time.AddDate does.
func AddMonths(day time.Time, n int) time.Time {
	return OnDayOfMonth(day, n, Day(day).Day())
}

// OnDayOfMonth moves n months from day and lands on dayOfMonth, clamped to the month length.
func OnDayOfMonth(day time.Time, n int, dayOfMonth int) time.Time {
	d := Day(day)
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	if last := DaysInMonth(first.Year(), first.Month()); dayOfMonth > last {
		dayOfMonth = last
	}
	return time.Date(first.Year(), first.Month(), dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts calendar months from a to b, ignoring the day of month.
func MonthsBetween(a, b time.Time) int {
	a, b = Day(a), Day(b)
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
