// Package marketclock answers "is the NYSE open" and "when should the bot
// wake next" in exchange-local time. Regular session only, no holiday
// calendar (a holiday run finds the market closed at the broker and the
// order simply does not fill).
package marketclock

import (
	"time"
	_ "time/tzdata"
)

const (
	openHour    = 9
	openMinute  = 30
	closeHour   = 16
	closeMinute = 0
)

var nyLoc *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// tzdata is linked in, so this should not happen; EST keeps the
		// bot conservative rather than dead.
		loc = time.FixedZone("EST", -5*3600)
	}
	nyLoc = loc
}

func Location() *time.Location { return nyLoc }

func Now() time.Time { return time.Now().In(nyLoc) }

func IsTradingDay(t time.Time) bool {
	t = t.In(nyLoc)
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsOpen reports whether t falls inside the regular session (09:30-16:00).
func IsOpen(t time.Time) bool {
	t = t.In(nyLoc)
	if !IsTradingDay(t) {
		return false
	}
	open := sessionOpen(t)
	sessionClose := time.Date(t.Year(), t.Month(), t.Day(), closeHour, closeMinute, 0, 0, nyLoc)
	return !t.Before(open) && !t.After(sessionClose)
}

func sessionOpen(t time.Time) time.Time {
	t = t.In(nyLoc)
	return time.Date(t.Year(), t.Month(), t.Day(), openHour, openMinute, 0, 0, nyLoc)
}

// NextOpen returns the next session open at or after t: today's open if the
// market has not opened yet, otherwise the next weekday's open.
func NextOpen(t time.Time) time.Time {
	t = t.In(nyLoc)
	if IsTradingDay(t) && t.Before(sessionOpen(t)) {
		return sessionOpen(t)
	}
	next := t.AddDate(0, 0, 1)
	for !IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return sessionOpen(next)
}

// NextRunAfterTrade schedules the next strategy run two days after a
// completed run, rolled forward to a trading day's open when it lands on a
// weekend.
func NextRunAfterTrade(t time.Time) time.Time {
	next := t.In(nyLoc).AddDate(0, 0, 2)
	if !IsTradingDay(next) {
		for !IsTradingDay(next) {
			next = next.AddDate(0, 0, 1)
		}
		return sessionOpen(next)
	}
	return next
}
