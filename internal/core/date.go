package core

import "time"

// DateLayout is the ISO calendar date format used for every stored date.
// Stored dates compare correctly as plain strings.
const DateLayout = "2006-01-02"

// TimestampLayout is a fixed-width UTC layout so created_at sorts lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today truncates now to midnight in its own location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
