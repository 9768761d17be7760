package model

import (
	"testing"
	"time"

	"srimurugan/pkg/calendar"
)

func TestBooking_Derive(t *testing.T) {
	b := &Booking{
		BookingDate:  calendar.MustNew(2024, time.June, 30),
		NumberOfDays: 3,
		TotalAmount:  25000,
		Advance:      5000,
		PickupTime:   "9:00 PM",
	}
	b.Derive()

	if want := calendar.MustNew(2024, time.July, 2); b.EndDate != want {
		t.Errorf("EndDate = %v, want %v", b.EndDate, want)
	}
	if b.Balance != 20000 {
		t.Errorf("Balance = %v, want 20000", b.Balance)
	}
	if b.PickupTime != "" {
		t.Errorf("PickupTime should be cleared without night pickup, got %q", b.PickupTime)
	}
}

func TestBooking_Interval(t *testing.T) {
	b := &Booking{
		ID:                "abc",
		BookingDate:       calendar.MustNew(2024, time.June, 10),
		NumberOfDays:      2,
		BeforeNightPickup: true,
		PickupTime:        "10:00 PM",
	}
	iv := b.Interval()

	if iv.ID != "abc" || iv.Days != 2 || !iv.NightPickup || iv.PickupTime != "10:00 PM" {
		t.Errorf("Interval() = %+v", iv)
	}
	if iv.End() != calendar.MustNew(2024, time.June, 11) {
		t.Errorf("End() = %v", iv.End())
	}
}

func TestBookingUpdate_Apply(t *testing.T) {
	b := &Booking{
		BookingDate:  calendar.MustNew(2024, time.June, 10),
		NumberOfDays: 2,
		To:           "Madurai",
		TotalAmount:  10000,
		Advance:      2000,
	}
	days := 4
	advance := 4000.0
	to := "Rameswaram"
	u := &BookingUpdate{NumberOfDays: &days, Advance: &advance, To: &to}

	if u.IsEmpty() {
		t.Fatal("update with fields reported empty")
	}
	u.Apply(b)

	if b.NumberOfDays != 4 || b.To != "Rameswaram" {
		t.Errorf("fields not applied: %+v", b)
	}
	if b.EndDate != calendar.MustNew(2024, time.June, 13) {
		t.Errorf("EndDate = %v", b.EndDate)
	}
	if b.Balance != 6000 {
		t.Errorf("Balance = %v, want 6000", b.Balance)
	}
	if !(&BookingUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
}

func TestFleet_Find(t *testing.T) {
	fleet := Fleet{{Name: "Vettaiyan"}, {Name: "Dheeran"}}

	b, ok := fleet.Find(" vettaiyan ")
	if !ok || b.Name != "Vettaiyan" {
		t.Errorf("Find = %+v, %v", b, ok)
	}
	if _, ok := fleet.Find("Unknown"); ok {
		t.Error("unexpected match for unknown bus")
	}
	if names := fleet.Names(); len(names) != 2 || names[1] != "Dheeran" {
		t.Errorf("Names() = %v", names)
	}
}
