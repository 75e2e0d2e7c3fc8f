// Package calendar supplies the Israeli business-day rules used to gate live
// customer contact. Only the weekly cycle is modeled: Saturday and Friday
// afternoon are off. Holiday tables are owned by the platform's calendar
// service, not this one.
package calendar

import "time"

// fridayCutoffHour is when the Israeli business week ends on Friday.
const fridayCutoffHour = 14

// IsBusinessDay reports whether t falls within Israeli business hours for
// the purpose of contacting customers.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday:
		return false
	case time.Friday:
		return t.Hour() < fridayCutoffHour
	default:
		return true
	}
}

// NextBusinessDay returns the first day after t that is a business day,
// preserving the time of day.
func NextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
