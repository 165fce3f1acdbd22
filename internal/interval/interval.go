// Package interval compares closed calendar-date ranges.
package interval

import (
	"time"

	"mobilityapi/internal/model"
)

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] share at least
// one calendar day. Both bounds are inclusive, so ranges touching on a single
// day overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = model.DateOf(aStart), model.DateOf(aEnd)
	bStart, bEnd = model.DateOf(bStart), model.DateOf(bEnd)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// OverlapsInterval is Overlaps for model.Interval values.
func OverlapsInterval(a, b model.Interval) bool {
	return Overlaps(a.InitialDate, a.FinalDate, b.InitialDate, b.FinalDate)
}

// Contains reports whether day falls inside [start, end], bounds included.
func Contains(start, end, day time.Time) bool {
	day = model.DateOf(day)
	return !day.Before(model.DateOf(start)) && !day.After(model.DateOf(end))
}
