// Package availability answers occupancy questions about the bookings of a
// single bus. Every query runs against an explicit Snapshot of that bus's
// bookings and has no side effects.
package availability

import (
	"errors"
	"fmt"
	"time"

	"srimurugan/pkg/calendar"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Interval is one reservation. It occupies the closed range [Start, End()].
// NightPickup means the party is collected on the evening before Start.
type Interval struct {
	ID          string        `json:"id"`
	Start       calendar.Date `json:"start"`
	Days        int           `json:"days"`
	NightPickup bool          `json:"night_pickup"`
	PickupTime  string        `json:"pickup_time,omitempty"`
}

func (iv Interval) End() calendar.Date {
	return iv.Start.AddDays(iv.Days - 1)
}

func (iv Interval) Contains(d calendar.Date) bool {
	return !d.Before(iv.Start) && !d.After(iv.End())
}

func (iv Interval) validate() error {
	if iv.Start.IsZero() {
		return fmt.Errorf("%w: booking %q has no start date", ErrInvalidArgument, iv.ID)
	}
	if iv.Days < 1 {
		return fmt.Errorf("%w: booking %q has duration %d, must be at least 1 day", ErrInvalidArgument, iv.ID, iv.Days)
	}
	return nil
}

// Conflict is one day of a proposed interval that an existing booking already claims.
type Conflict struct {
	Date    calendar.Date `json:"date"`
	Booking Interval      `json:"booking"`
}

// Snapshot is an immutable, validated copy of one bus's bookings in list order.
type Snapshot struct {
	intervals []Interval
}

// NewSnapshot validates and copies intervals.
func NewSnapshot(intervals []Interval) (*Snapshot, error) {
	copied := make([]Interval, len(intervals))
	for i, iv := range intervals {
		if err := iv.validate(); err != nil {
			return nil, err
		}
		copied[i] = iv
	}
	return &Snapshot{intervals: copied}, nil
}

func (s *Snapshot) Len() int {
	return len(s.intervals)
}

// Intervals returns a copy of the snapshot contents.
func (s *Snapshot) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// IsDateOccupied reports false for the zero Date; callers holding
// unvalidated input should use Lookup.
func (s *Snapshot) IsDateOccupied(d calendar.Date) bool {
	_, ok := s.OccupyingBooking(d)
	return ok
}

// OccupyingBooking returns the first booking in list order whose range
// contains d. Overlapping bookings are a data fault; the first one still wins.
// The zero Date is never occupied.
func (s *Snapshot) OccupyingBooking(d calendar.Date) (Interval, bool) {
	return s.occupying(d, "")
}

// Lookup is OccupyingBooking for unvalidated input: it fails with
// ErrInvalidArgument when d is the zero Date.
func (s *Snapshot) Lookup(d calendar.Date) (Interval, bool, error) {
	if d.IsZero() {
		return Interval{}, false, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	iv, ok := s.occupying(d, "")
	return iv, ok, nil
}

// StartingOn returns the first booking whose start date is d.
func (s *Snapshot) StartingOn(d calendar.Date) (Interval, bool) {
	for _, iv := range s.intervals {
		if iv.Start.Equal(d) {
			return iv, true
		}
	}
	return Interval{}, false
}

// FindConflicts returns one record per day of [start, start+days-1] that is
// occupied by a booking other than excludeID. An empty result means the
// interval is free. Pass excludeID="" when creating a new booking.
func (s *Snapshot) FindConflicts(start calendar.Date, days int, excludeID string) ([]Conflict, error) {
	proposed := Interval{ID: "proposed", Start: start, Days: days}
	if err := proposed.validate(); err != nil {
		return nil, err
	}

	conflicts := []Conflict{}
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		if iv, ok := s.occupying(d, excludeID); ok {
			conflicts = append(conflicts, Conflict{Date: d, Booking: iv})
		}
	}
	return conflicts, nil
}

// HasNightPickupSpillover reports whether a night-pickup booking starts on
// the day after d, so d shows the pickup even though it is not booked.
func (s *Snapshot) HasNightPickupSpillover(d calendar.Date) bool {
	_, ok := s.NightPickupFor(d)
	return ok
}

// NightPickupFor returns the night-pickup booking that starts the day after d.
func (s *Snapshot) NightPickupFor(d calendar.Date) (Interval, bool) {
	next := d.AddDays(1)
	for _, iv := range s.intervals {
		if iv.NightPickup && iv.Start.Equal(next) {
			return iv, true
		}
	}
	return Interval{}, false
}

func (s *Snapshot) occupying(d calendar.Date, excludeID string) (Interval, bool) {
	for _, iv := range s.intervals {
		if excludeID != "" && iv.ID == excludeID {
			continue
		}
		if iv.Contains(d) {
			return iv, true
		}
	}
	return Interval{}, false
}

// IsPastDate compares date and referenceToday at day granularity, each in
// its own location.
func IsPastDate(date, referenceToday time.Time) bool {
	return calendar.FromTime(date).Before(calendar.FromTime(referenceToday))
}

// ConflictDates lists the colliding dates in order, for rejection messages.
func ConflictDates(conflicts []Conflict) []calendar.Date {
	dates := make([]calendar.Date, 0, len(conflicts))
	for _, c := range conflicts {
		dates = append(dates, c.Date)
	}
	return dates
}
