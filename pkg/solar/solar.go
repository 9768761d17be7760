// Package solar maps Gregorian dates onto the Tamil solar calendar shown
// alongside every calendar cell.
package solar

import (
	"fmt"
	"strings"
	"time"

	"srimurugan/pkg/calendar"
)

// Info is the solar reading of one Gregorian date.
type Info struct {
	MonthName    string `json:"month_name"`
	DayNumber    int    `json:"day_number"`
	WeekdayName  string `json:"weekday_name"`
	Label        string `json:"label"`
	TamilMonth   string `json:"tamil_month"`
	TamilWeekday string `json:"tamil_weekday"`
	TamilLabel   string `json:"tamil_label"`
}

// window is one solar month. It starts on (startMonth, startDay) and runs to
// the day before the next row's start, always ending in the following
// Gregorian month.
type window struct {
	startMonth      time.Month
	startDay        int
	offsetStart     int // added to the Gregorian day inside startMonth
	offsetFollowing int // added to the Gregorian day inside the following month, common year
	name            string
	tamil           string
}

// windows tiles the Gregorian year. Order matters: lookups take the first
// match and the last row closes the wrap-around back to row 0.
var windows = [12]window{
	{time.April, 14, -13, 17, "Chithirai", "சித்திரை"},
	{time.May, 15, -14, 17, "Vaikasi", "வைகாசி"},
	{time.June, 15, -14, 16, "Aani", "ஆனி"},
	{time.July, 17, -16, 15, "Aadi", "ஆடி"},
	{time.August, 17, -16, 15, "Aavani", "ஆவணி"},
	{time.September, 17, -16, 14, "Purattasi", "புரட்டாசி"},
	{time.October, 18, -17, 14, "Aippasi", "ஐப்பசி"},
	{time.November, 17, -16, 14, "Karthigai", "கார்த்திகை"},
	{time.December, 17, -16, 15, "Margazhi", "மார்கழி"},
	{time.January, 15, -14, 17, "Thai", "தை"},
	{time.February, 14, -13, 15, "Maasi", "மாசி"},
	{time.March, 16, -15, 16, "Panguni", "பங்குனி"},
}

var weekdays = [7]struct {
	name  string
	tamil string
}{
	{"Sunday", "ஞாயிறு"},
	{"Monday", "திங்கள்"},
	{"Tuesday", "செவ்வாய்"},
	{"Wednesday", "புதன்"},
	{"Thursday", "வியாழன்"},
	{"Friday", "வெள்ளி"},
	{"Saturday", "சனி"},
}

var tamilDigits = [10]string{"௦", "௧", "௨", "௩", "௪", "௫", "௬", "௭", "௮", "௯"}

func nextMonth(m time.Month) time.Month {
	return m%12 + 1
}

// contains reports whether (m, day) falls inside window i.
func contains(i int, m time.Month, day int) bool {
	w := windows[i]
	next := windows[(i+1)%len(windows)]
	if m == w.startMonth {
		return day >= w.startDay
	}
	return m == nextMonth(w.startMonth) && m == next.startMonth && day < next.startDay
}

// dayNumber returns the 1-based day inside window i for date d, which must
// belong to that window.
func dayNumber(i int, d calendar.Date) int {
	w := windows[i]
	if d.Month == w.startMonth {
		return d.Day + w.offsetStart
	}
	offset := w.offsetFollowing
	// The start month of a window whose tail lands in d.Month is always in d's
	// year except for a December start, and December never changes length.
	if w.startMonth == time.February && calendar.IsLeap(d.Year) {
		offset++
	}
	return d.Day + offset
}

// Lookup returns the window index for d. fallback is true only if no row
// matched, in which case index 0 is returned; a correct table never does this.
func Lookup(d calendar.Date) (index int, fallback bool) {
	for i := range windows {
		if contains(i, d.Month, d.Day) {
			return i, false
		}
	}
	return 0, true
}

// Convert returns the solar month, day, weekday and labels for d. Month name
// and day number come from a single table lookup.
func Convert(d calendar.Date) Info {
	i, fallback := Lookup(d)
	w := windows[i]

	day := d.Day
	if !fallback {
		day = dayNumber(i, d)
	}

	wd := weekdays[d.Weekday()]
	return Info{
		MonthName:    w.name,
		DayNumber:    day,
		WeekdayName:  wd.name,
		Label:        fmt.Sprintf("%d %s - %s", day, w.name, wd.name),
		TamilMonth:   w.tamil,
		TamilWeekday: wd.tamil,
		TamilLabel:   fmt.Sprintf("%s %s - %s", ToTamilNumerals(day), w.tamil, wd.tamil),
	}
}

// MonthTitle is the solar label of the first day of a Gregorian month.
func MonthTitle(year int, month time.Month) Info {
	return Convert(calendar.Date{Year: year, Month: month, Day: 1})
}

// MonthNames returns the twelve solar month names starting from Chithirai.
func MonthNames() []string {
	names := make([]string, 0, len(windows))
	for _, w := range windows {
		names = append(names, w.name)
	}
	return names
}

// ToTamilNumerals renders a non-negative integer with Tamil digits.
func ToTamilNumerals(n int) string {
	if n < 0 {
		return "-" + ToTamilNumerals(-n)
	}
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for _, r := range digits {
		b.WriteString(tamilDigits[r-'0'])
	}
	return b.String()
}
