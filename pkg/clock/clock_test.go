package clock

import (
	"testing"
	"time"

	"srimurugan/pkg/calendar"
)

func TestFixedDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	c := FixedDate(calendar.MustNew(2024, time.June, 10), ist)

	if got := c.Today(); got != calendar.MustNew(2024, time.June, 10) {
		t.Errorf("Today() = %v", got)
	}
	if c.Location() != ist {
		t.Error("location not preserved")
	}
}

func TestSystemClock_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	c := New(ist)

	if c.Now().Location() != ist {
		t.Error("Now() not in configured location")
	}
	if New(nil).Location() != time.UTC {
		t.Error("nil location should default to UTC")
	}
}
