// Package clock supplies "today" in the business timezone so services can be
// tested against a fixed date.
package clock

import (
	"time"

	"srimurugan/pkg/calendar"
)

type Clock interface {
	Now() time.Time
	Today() calendar.Date
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns the wall clock in loc. A nil loc means UTC.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c systemClock) Today() calendar.Date     { return calendar.FromTime(c.Now()) }
func (c systemClock) Location() *time.Location { return c.loc }

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time           { return f.At }
func (f Fixed) Today() calendar.Date     { return calendar.FromTime(f.At) }
func (f Fixed) Location() *time.Location { return f.At.Location() }

// FixedDate is a Fixed clock at noon of d in loc.
func FixedDate(d calendar.Date, loc *time.Location) Fixed {
	if loc == nil {
		loc = time.UTC
	}
	return Fixed{At: time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, loc)}
}
