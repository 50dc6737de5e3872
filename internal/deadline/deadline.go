// Package deadline computes procedural due dates under the simplified
// recess and weekend rules of Turkish civil procedure. The recess window
// and the post-recess date are fixed heuristics (HMK m.104 in simplified
// form); real practice has more exceptions, and any generalization should
// go through a domain expert rather than this package.
package deadline

import "time"

// Fixed annual judicial recess: July 20 through August 31. A deadline
// landing inside the window moves to September 7 of the same year.
const (
	recessStartMonth = time.July
	recessStartDay   = 20
	recessEndMonth   = time.August
	recessEndDay     = 31
	postRecessMonth  = time.September
	postRecessDay    = 7
)

// Spec is the input to a deadline calculation.
type Spec struct {
	Start        time.Time
	DurationDays int
	// RecessAdjust extends deadlines that land inside the judicial recess.
	RecessAdjust bool
}

// Result is a pure function of Spec and the supplied "now". The adjustment
// flags are informational, for display; the due-date contract is carried by
// DueDate alone.
type Result struct {
	DueDate         time.Time
	RecessAdjusted  bool
	WeekendAdjusted bool
	DaysRemaining   int
}

// Calculate computes the due date: nominal = start + duration, then the
// recess adjustment, then the weekend adjustment applied to the already
// recess-adjusted date. The order is load-bearing.
func Calculate(spec Spec, now time.Time) Result {
	due := dateOnly(spec.Start).AddDate(0, 0, spec.DurationDays)

	var res Result

	if spec.RecessAdjust && inRecess(due) {
		due = time.Date(due.Year(), postRecessMonth, postRecessDay, 0, 0, 0, 0, due.Location())
		res.RecessAdjusted = true
	}

	switch due.Weekday() {
	case time.Saturday:
		due = due.AddDate(0, 0, 2)
		res.WeekendAdjusted = true
	case time.Sunday:
		due = due.AddDate(0, 0, 1)
		res.WeekendAdjusted = true
	}

	res.DueDate = due
	res.DaysRemaining = int(due.Sub(dateOnly(now)).Hours() / 24)
	return res
}

// inRecess reports whether a date falls inside the recess window of its
// own year.
func inRecess(d time.Time) bool {
	start := time.Date(d.Year(), recessStartMonth, recessStartDay, 0, 0, 0, 0, d.Location())
	end := time.Date(d.Year(), recessEndMonth, recessEndDay, 0, 0, 0, 0, d.Location())
	return !d.Before(start) && !d.After(end)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
