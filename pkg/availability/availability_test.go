package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srimurugan/pkg/calendar"
)

func day(m time.Month, d int) calendar.Date {
	return calendar.MustNew(2024, m, d)
}

func snapshot(t *testing.T, intervals ...Interval) *Snapshot {
	t.Helper()
	s, err := NewSnapshot(intervals)
	require.NoError(t, err)
	return s
}

func TestScenario_ThreeDayBooking(t *testing.T) {
	s := snapshot(t, Interval{ID: "a", Start: day(time.June, 10), Days: 3})

	assert.True(t, s.IsDateOccupied(day(time.June, 11)))

	conflicts, err := s.FindConflicts(day(time.June, 12), 2, "")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, day(time.June, 12), conflicts[0].Date)
	assert.Equal(t, "a", conflicts[0].Booking.ID)

	conflicts, err = s.FindConflicts(day(time.June, 13), 2, "")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestIsDateOccupied_Boundaries(t *testing.T) {
	s := snapshot(t, Interval{ID: "a", Start: day(time.June, 10), Days: 3})

	tests := []struct {
		date calendar.Date
		want bool
	}{
		{day(time.June, 9), false},
		{day(time.June, 10), true},
		{day(time.June, 12), true},
		{day(time.June, 13), false},
	}
	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsDateOccupied(tt.date))
		})
	}
}

func TestOccupyingBooking_FirstByListOrder(t *testing.T) {
	// Overlapping bookings should never be stored; if they are, list order decides.
	s := snapshot(t,
		Interval{ID: "first", Start: day(time.July, 1), Days: 5},
		Interval{ID: "second", Start: day(time.July, 3), Days: 2},
	)

	got, ok := s.OccupyingBooking(day(time.July, 3))
	require.True(t, ok)
	assert.Equal(t, "first", got.ID)

	_, ok = s.OccupyingBooking(day(time.July, 10))
	assert.False(t, ok)
}

func TestFindConflicts_EmptyIffFree(t *testing.T) {
	bookings := []Interval{
		{ID: "a", Start: day(time.March, 5), Days: 2},
		{ID: "b", Start: day(time.March, 10), Days: 1},
		{ID: "c", Start: day(time.March, 20), Days: 4},
	}
	s := snapshot(t, bookings...)

	for start := day(time.March, 1); start.Before(day(time.March, 28)); start = start.AddDays(1) {
		for n := 1; n <= 6; n++ {
			conflicts, err := s.FindConflicts(start, n, "")
			require.NoError(t, err)

			occupied := 0
			for i := 0; i < n; i++ {
				d := start.AddDays(i)
				if s.IsDateOccupied(d) {
					occupied++
					assert.Contains(t, ConflictDates(conflicts), d, "start=%s n=%d", start, n)
				}
			}
			assert.Equal(t, occupied, len(conflicts), "start=%s n=%d", start, n)
			assert.Equal(t, occupied == 0, len(conflicts) == 0)
		}
	}
}

func TestFindConflicts_ExcludeOwnBooking(t *testing.T) {
	s := snapshot(t,
		Interval{ID: "edit-me", Start: day(time.August, 1), Days: 3},
		Interval{ID: "other", Start: day(time.August, 5), Days: 2},
	)

	conflicts, err := s.FindConflicts(day(time.August, 1), 3, "edit-me")
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	conflicts, err = s.FindConflicts(day(time.August, 1), 5, "edit-me")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "other", conflicts[0].Booking.ID)
	assert.Equal(t, day(time.August, 5), conflicts[0].Date)
}

func TestFindConflicts_InvalidArguments(t *testing.T) {
	s := snapshot(t)

	_, err := s.FindConflicts(day(time.May, 1), 0, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = s.FindConflicts(day(time.May, 1), -2, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = s.FindConflicts(calendar.Date{}, 1, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewSnapshot_RejectsMalformedIntervals(t *testing.T) {
	_, err := NewSnapshot([]Interval{{ID: "x", Start: day(time.May, 1), Days: 0}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewSnapshot([]Interval{{ID: "y", Days: 2}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewSnapshot_CopiesInput(t *testing.T) {
	in := []Interval{{ID: "a", Start: day(time.May, 1), Days: 1}}
	s := snapshot(t, in...)
	in[0].Days = 10

	assert.False(t, s.IsDateOccupied(day(time.May, 2)))
	assert.Equal(t, 1, s.Len())
}

func TestHasNightPickupSpillover(t *testing.T) {
	s := snapshot(t,
		Interval{ID: "night", Start: day(time.September, 10), Days: 2, NightPickup: true, PickupTime: "9:00 PM"},
		Interval{ID: "day", Start: day(time.September, 20), Days: 1},
	)

	for d := day(time.September, 1); d.Before(day(time.September, 30)); d = d.AddDays(1) {
		want := d.Equal(day(time.September, 9))
		assert.Equal(t, want, s.HasNightPickupSpillover(d), d.String())
	}

	got, ok := s.NightPickupFor(day(time.September, 9))
	require.True(t, ok)
	assert.Equal(t, "9:00 PM", got.PickupTime)
}

func TestStartingOn(t *testing.T) {
	s := snapshot(t, Interval{ID: "a", Start: day(time.June, 10), Days: 3})

	got, ok := s.StartingOn(day(time.June, 10))
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = s.StartingOn(day(time.June, 11))
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	s := snapshot(t, Interval{ID: "a", Start: day(time.June, 10), Days: 3})

	iv, ok, err := s.Lookup(day(time.June, 11))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", iv.ID)

	_, ok, err = s.Lookup(day(time.June, 13))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Lookup(calendar.Date{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, ok)
	assert.False(t, s.IsDateOccupied(calendar.Date{}))
}

func TestIsPastDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	today := time.Date(2024, time.June, 10, 23, 45, 0, 0, ist)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"yesterday late evening", time.Date(2024, time.June, 9, 23, 59, 0, 0, ist), true},
		{"today early morning", time.Date(2024, time.June, 10, 0, 1, 0, 0, ist), false},
		{"today later than reference", time.Date(2024, time.June, 10, 23, 59, 0, 0, ist), false},
		{"tomorrow", time.Date(2024, time.June, 11, 0, 0, 0, 0, ist), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPastDate(tt.date, today))
		})
	}
}

func TestInterval_EndCrossesMonth(t *testing.T) {
	iv := Interval{Start: day(time.January, 30), Days: 3}
	assert.Equal(t, day(time.February, 1), iv.End())
}
