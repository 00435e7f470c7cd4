package util

import "time"

// IsTradingDay reports whether t falls on a regular NYSE trading session day.
// Weekends and fixed full-day market holidays are excluded. Good Friday and
// ad-hoc closures are not modelled; callers needing exact session data should
// use the broker calendar API instead.
func IsTradingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !isMarketHoliday(t)
}

// PreviousTradingDay returns the latest trading day strictly before t.
func PreviousTradingDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, -1)
	for !IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// TradingDays counts the trading days in [start, end], inclusive.
func TradingDays(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			n++
		}
	}
	return n
}

func isMarketHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()

	// Fixed-date holidays. Observation shifts (e.g. July 4 on a Saturday
	// observed Friday) are not applied; the shifted day is a weekday the
	// market is closed, which this helper reports as open. Acceptable for
	// default date-range selection.
	switch {
	case m == time.January && d == 1: // New Year's Day
		return true
	case m == time.June && d == 19: // Juneteenth
		return true
	case m == time.July && d == 4: // Independence Day
		return true
	case m == time.December && d == 25: // Christmas
		return true
	}

	switch {
	case m == time.January && nthWeekday(t, time.Monday) == 3: // MLK Day
		return true
	case m == time.February && nthWeekday(t, time.Monday) == 3: // Washington's Birthday
		return true
	case m == time.May && isLastWeekday(t, time.Monday): // Memorial Day
		return true
	case m == time.September && nthWeekday(t, time.Monday) == 1: // Labor Day
		return true
	case m == time.November && nthWeekday(t, time.Thursday) == 4: // Thanksgiving
		return true
	}
	return false
}

// nthWeekday returns which occurrence of its weekday within the month t is
// (1-based), or 0 if t is not on that weekday.
func nthWeekday(t time.Time, day time.Weekday) int {
	if t.Weekday() != day {
		return 0
	}
	return (t.Day()-1)/7 + 1
}

// isLastWeekday reports whether t is the last occurrence of the given weekday
// in its month.
func isLastWeekday(t time.Time, day time.Weekday) bool {
	if t.Weekday() != day {
		return false
	}
	return t.AddDate(0, 0, 7).Month() != t.Month()
}
