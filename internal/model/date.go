package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date and returns it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateOf drops the clock part of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Interval is a closed range of calendar dates.
type Interval struct {
	InitialDate time.Time `json:"initialDate"`
	FinalDate   time.Time `json:"finalDate"`
}

// Valid reports whether InitialDate is not after FinalDate.
func (i Interval) Valid() bool {
	return !DateOf(i.InitialDate).After(DateOf(i.FinalDate))
}
