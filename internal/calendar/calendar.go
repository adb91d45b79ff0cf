// Package calendar holds the small set of date helpers the trip workflow
// needs: long-form formatting, instant comparison, and calendar-day
// arithmetic in a caller-supplied location.
package calendar

import "time"

// LongDateLayout renders dates the way confirmation emails show them,
// e.g. "January 2, 2006".
const LongDateLayout = "January 2, 2006"

// FormatLong formats t as a long date in loc.
func FormatLong(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LongDateLayout)
}

// FormatRange formats a start/end pair as "June 1, 2030 to June 5, 2030".
func FormatRange(start, end time.Time, loc *time.Location) string {
	return FormatLong(start, loc) + " to " + FormatLong(end, loc)
}

// IsBefore reports whether a is strictly before b.
func IsBefore(a, b time.Time) bool { return a.Before(b) }

// IsAfter reports whether a is strictly after b.
func IsAfter(a, b time.Time) bool { return a.After(b) }

// Within reports whether t lies in the closed interval [start, end].
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves t by n calendar days, keeping the wall-clock time.
// Across a DST change the elapsed duration is not a multiple of 24h.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DiffDays returns the number of calendar-day boundaries between from and
// to in loc. It is negative when to is on an earlier day than from.
// Jan 1 23:00 to Jan 2 01:00 is one day.
func DiffDays(from, to time.Time, loc *time.Location) int {
	return int(civilDay(to, loc) - civilDay(from, loc))
}

const secondsPerDay = 24 * 60 * 60

// civilDay numbers t's calendar day in loc, counting from the Unix epoch.
// UTC midnights are exact multiples of a day, so neither DST shifts in loc
// nor time.Duration's ~292 year range can skew the count.
func civilDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}
