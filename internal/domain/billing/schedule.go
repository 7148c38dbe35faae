package billing

import "time"

// billingCutoffDay is the day of month after which the upcoming month is
// already included in the billing range (the current month is ~80% elapsed).
const billingCutoffDay = 20

// MonthOf normalizes a date to its billing month identity: midnight UTC on
// the first day of the calendar month.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the billing month immediately after the given one
func NextMonth(month time.Time) time.Time {
	return MonthOf(month).AddDate(0, 1, 0)
}

// SameMonth reports whether two dates fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ScheduleRange is the inclusive range of billing months a lease must have
// materialized, resolved from the move-in date and the reference date.
type ScheduleRange struct {
	First time.Time
	Last  time.Time
}

// ResolveSchedule resolves the billing month range for a lease.
//
// The first billing month is the month after the move-in month - rent is
// never owed for the move-in month itself. The last month to check is the
// month containing today, advanced to the next month once today is past the
// 20th. The returned bool is false when the lease has not yet reached its
// first obligation (first > last), in which case the range is empty.
func ResolveSchedule(moveInDate, today time.Time) (ScheduleRange, bool) {
	first := NextMonth(moveInDate)

	last := MonthOf(today)
	if today.Day() > billingCutoffDay {
		last = NextMonth(last)
	}

	if first.After(last) {
		return ScheduleRange{}, false
	}
	return ScheduleRange{First: first, Last: last}, true
}

// Months returns every billing month in the range in ascending order
func (r ScheduleRange) Months() []time.Time {
	if r.First.IsZero() {
		return nil
	}
	var months []time.Time
	for m := r.First; !m.After(r.Last); m = NextMonth(m) {
		months = append(months, m)
	}
	return months
}

// Contains reports whether the given billing month falls inside the range
func (r ScheduleRange) Contains(month time.Time) bool {
	m := MonthOf(month)
	return !m.Before(r.First) && !m.After(r.Last)
}
