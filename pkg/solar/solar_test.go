package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srimurugan/pkg/calendar"
)

func date(y int, m time.Month, d int) calendar.Date {
	return calendar.MustNew(y, m, d)
}

func TestConvert_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		date    calendar.Date
		month   string
		day     int
		weekday string
	}{
		{"chithirai first day", date(2024, time.April, 14), "Chithirai", 1, "Sunday"},
		{"chithirai last day", date(2024, time.May, 14), "Chithirai", 31, "Tuesday"},
		{"vaikasi first day", date(2024, time.May, 15), "Vaikasi", 1, "Wednesday"},
		{"may first inside chithirai", date(2024, time.May, 1), "Chithirai", 18, "Wednesday"},
		{"panguni last day", date(2024, time.April, 13), "Panguni", 29, "Saturday"},
		{"margazhi crosses new year", date(2025, time.January, 1), "Margazhi", 16, "Wednesday"},
		{"thai first day", date(2025, time.January, 15), "Thai", 1, "Wednesday"},
		{"maasi leap day", date(2024, time.February, 29), "Maasi", 16, "Thursday"},
		{"maasi after leap day", date(2024, time.March, 1), "Maasi", 17, "Friday"},
		{"maasi common year", date(2023, time.March, 1), "Maasi", 16, "Wednesday"},
		{"vaikasi june", date(2024, time.June, 1), "Vaikasi", 18, "Saturday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.date)
			assert.Equal(t, tt.month, got.MonthName)
			assert.Equal(t, tt.day, got.DayNumber)
			assert.Equal(t, tt.weekday, got.WeekdayName)
		})
	}
}

func TestConvert_Labels(t *testing.T) {
	got := Convert(date(2024, time.April, 14))

	assert.Equal(t, "1 Chithirai - Sunday", got.Label)
	assert.Equal(t, "சித்திரை", got.TamilMonth)
	assert.Equal(t, "ஞாயிறு", got.TamilWeekday)
	assert.Equal(t, "௧ சித்திரை - ஞாயிறு", got.TamilLabel)
}

func TestLookup_NeverFallsBack(t *testing.T) {
	end := date(2100, time.December, 31)
	for d := date(1900, time.January, 1); !d.After(end); d = d.AddDays(1) {
		_, fallback := Lookup(d)
		require.Falsef(t, fallback, "date %s used the fallback window", d)
	}
}

func TestWindows_PartitionYear(t *testing.T) {
	// 2024 is a leap year so February 29 is covered too.
	for d := date(2024, time.January, 1); d.Year == 2024; d = d.AddDays(1) {
		claims := 0
		for i := range windows {
			if contains(i, d.Month, d.Day) {
				claims++
			}
		}
		require.Equalf(t, 1, claims, "date %s claimed by %d windows", d, claims)
	}
}

func TestConvert_DayNumberIsConsecutive(t *testing.T) {
	end := date(2100, time.December, 31)
	prev := Convert(date(1900, time.January, 1))
	for d := date(1900, time.January, 2); !d.After(end); d = d.AddDays(1) {
		cur := Convert(d)
		if cur.MonthName == prev.MonthName {
			require.Equalf(t, prev.DayNumber+1, cur.DayNumber, "day number did not advance on %s", d)
		} else {
			require.Equalf(t, 1, cur.DayNumber, "new window %s did not start at 1 on %s", cur.MonthName, d)
		}
		prev = cur
	}
}

func TestConvert_ResetsAtEveryBoundary(t *testing.T) {
	for i, w := range windows {
		start := date(2023, w.startMonth, w.startDay)
		got := Convert(start)
		assert.Equal(t, w.name, got.MonthName, "row %d", i)
		assert.Equal(t, 1, got.DayNumber, "row %d", i)

		before := Convert(start.AddDays(-1))
		prevRow := windows[(i+len(windows)-1)%len(windows)]
		assert.Equal(t, prevRow.name, before.MonthName, "day before row %d", i)
	}
}

func TestToTamilNumerals(t *testing.T) {
	assert.Equal(t, "௦", ToTamilNumerals(0))
	assert.Equal(t, "௩௧", ToTamilNumerals(31))
	assert.Equal(t, "௨௦௨௪", ToTamilNumerals(2024))
}

func TestMonthTitle(t *testing.T) {
	got := MonthTitle(2024, time.May)
	assert.Equal(t, "Chithirai", got.MonthName)
	assert.Equal(t, 18, got.DayNumber)
}

func TestMonthNames(t *testing.T) {
	names := MonthNames()
	require.Len(t, names, 12)
	assert.Equal(t, "Chithirai", names[0])
	assert.Equal(t, "Panguni", names[11])
}
