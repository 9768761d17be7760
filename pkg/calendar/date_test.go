package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNew_RejectsImpossibleDates(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{"regular day", 2024, time.June, 10, false},
		{"leap day", 2024, time.February, 29, false},
		{"leap day in common year", 2023, time.February, 29, true},
		{"day zero", 2024, time.June, 0, true},
		{"june 31", 2024, time.June, 31, true},
		{"month 13", 2024, time.Month(13), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.year, tt.month, tt.day)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFromTime_TruncatesInOwnLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	late := time.Date(2024, time.June, 10, 23, 30, 0, 0, ist)

	got := FromTime(late)
	want := Date{Year: 2024, Month: time.June, Day: 10}
	if got != want {
		t.Errorf("FromTime(%v) = %v, want %v", late, got, want)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{MustNew(2024, time.February, 28), 1, MustNew(2024, time.February, 29)},
		{MustNew(2023, time.February, 28), 1, MustNew(2023, time.March, 1)},
		{MustNew(2024, time.December, 31), 1, MustNew(2025, time.January, 1)},
		{MustNew(2024, time.March, 1), -1, MustNew(2024, time.February, 29)},
	}
	for _, tt := range tests {
		if got := tt.from.AddDays(tt.n); got != tt.want {
			t.Errorf("%v.AddDays(%d) = %v, want %v", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	a := MustNew(2024, time.June, 10)
	b := MustNew(2024, time.June, 11)

	if !a.Before(b) || b.Before(a) {
		t.Error("expected a before b")
	}
	if !b.After(a) {
		t.Error("expected b after a")
	}
	if a.Compare(a) != 0 || !a.Equal(a) {
		t.Error("expected a equal to itself")
	}
	if got := a.DaysUntil(MustNew(2024, time.July, 10)); got != 30 {
		t.Errorf("DaysUntil = %d, want 30", got)
	}
}

func TestParseAndJSON(t *testing.T) {
	d, err := Parse(" 2024-04-14 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-04-14" {
		t.Errorf("String() = %s", d.String())
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-04-14"` {
		t.Errorf("marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if _, err := Parse("14/04/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestWeekday(t *testing.T) {
	if got := MustNew(2024, time.April, 14).Weekday(); got != time.Sunday {
		t.Errorf("Weekday() = %v, want Sunday", got)
	}
}
