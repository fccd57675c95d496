package planner

import (
	"time"
)

const (
	compactDateLayout = "20060102"
	compactTimeLayout = "1504"
)

// DaysUntilNext counts the days from now until the next given weekday.
// The result is always between 1 and 7, so asking for today's weekday gives a week.
func DaysUntilNext(now time.Time, weekday time.Weekday) int {
	offset := (int(weekday) + (7 - int(now.Weekday()))) % 7
	if offset == 0 {
		offset = 7
	}

	return offset
}

// NextWeekdayAt is the date of the next given weekday with the time of day fixed
func NextWeekdayAt(now time.Time, weekday time.Weekday, hour int, minute int) time.Time {
	date := now.AddDate(0, 0, DaysUntilNext(now, weekday))

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// ArrivalToken formats an instant as the compact YYYYMMDDTHHMM token
func ArrivalToken(arrival time.Time) string {
	return arrival.Format(compactDateLayout) + "T" + arrival.Format(compactTimeLayout)
}
