package model

import (
	"time"

	"srimurugan/pkg/availability"
	"srimurugan/pkg/calendar"
)

// PickupTimes are the evening slots offered for a night pickup.
var PickupTimes = []string{"7:00 PM", "8:00 PM", "9:00 PM", "10:00 PM", "11:00 PM", "12:00 AM"}

// Booking is one reservation of a bus for a run of consecutive days starting
// on BookingDate. EndDate and Balance are derived on every write.
type Booking struct {
	ID                string        `json:"id,omitempty"`
	BusName           string        `json:"bus_name" validate:"required,bus_name"`
	BookingDate       calendar.Date `json:"booking_date" validate:"required"`
	EndDate           calendar.Date `json:"end_date"`
	NumberOfDays      int           `json:"number_of_days" validate:"required,min=1,max_booking_days"`
	PartyName         string        `json:"party_name" validate:"omitempty,max=100"`
	PartyPhone        string        `json:"party_phone" validate:"omitempty,len=10,numeric"`
	From              string        `json:"from" validate:"omitempty,max=100"`
	Via               string        `json:"via" validate:"omitempty,max=200"`
	To                string        `json:"to" validate:"required,max=100"`
	BeforeNightPickup bool          `json:"before_night_pickup"`
	PickupTime        string        `json:"pickup_time,omitempty" validate:"omitempty,pickup_time"`
	TotalAmount       float64       `json:"total_amount" validate:"gte=0"`
	Advance           float64       `json:"advance" validate:"gte=0"`
	Balance           float64       `json:"balance"`
	RecommendedBy     string        `json:"recommended_by" validate:"omitempty,max=100"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Derive recomputes EndDate and Balance. A night pickup without the flag set
// drops its pickup time.
func (b *Booking) Derive() {
	if b.NumberOfDays > 0 && !b.BookingDate.IsZero() {
		b.EndDate = b.BookingDate.AddDays(b.NumberOfDays - 1)
	}
	if !b.BeforeNightPickup {
		b.PickupTime = ""
	}
	b.Balance = b.TotalAmount - b.Advance
}

func (b *Booking) Interval() availability.Interval {
	return availability.Interval{
		ID:          b.ID,
		Start:       b.BookingDate,
		Days:        b.NumberOfDays,
		NightPickup: b.BeforeNightPickup,
		PickupTime:  b.PickupTime,
	}
}

type Bookings []*Booking

func (bs Bookings) Intervals() []availability.Interval {
	out := make([]availability.Interval, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Interval())
	}
	return out
}

// ByID indexes bookings for resolving snapshot intervals back to records.
func (bs Bookings) ByID() map[string]*Booking {
	out := make(map[string]*Booking, len(bs))
	for _, b := range bs {
		out[b.ID] = b
	}
	return out
}

// BookingUpdate carries a partial update. Nil fields are left unchanged.
type BookingUpdate struct {
	BookingDate       *calendar.Date `json:"booking_date,omitempty"`
	NumberOfDays      *int           `json:"number_of_days,omitempty" validate:"omitempty,min=1,max_booking_days"`
	PartyName         *string        `json:"party_name,omitempty" validate:"omitempty,max=100"`
	PartyPhone        *string        `json:"party_phone,omitempty" validate:"omitempty,len=10,numeric"`
	From              *string        `json:"from,omitempty" validate:"omitempty,max=100"`
	Via               *string        `json:"via,omitempty" validate:"omitempty,max=200"`
	To                *string        `json:"to,omitempty" validate:"omitempty,min=1,max=100"`
	BeforeNightPickup *bool          `json:"before_night_pickup,omitempty"`
	PickupTime        *string        `json:"pickup_time,omitempty" validate:"omitempty,pickup_time"`
	TotalAmount       *float64       `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Advance           *float64       `json:"advance,omitempty" validate:"omitempty,gte=0"`
	RecommendedBy     *string        `json:"recommended_by,omitempty" validate:"omitempty,max=100"`
}

// Apply copies the set fields of u onto b and re-derives computed fields.
func (u *BookingUpdate) Apply(b *Booking) {
	if u.BookingDate != nil {
		b.BookingDate = *u.BookingDate
	}
	if u.NumberOfDays != nil {
		b.NumberOfDays = *u.NumberOfDays
	}
	if u.PartyName != nil {
		b.PartyName = *u.PartyName
	}
	if u.PartyPhone != nil {
		b.PartyPhone = *u.PartyPhone
	}
	if u.From != nil {
		b.From = *u.From
	}
	if u.Via != nil {
		b.Via = *u.Via
	}
	if u.To != nil {
		b.To = *u.To
	}
	if u.BeforeNightPickup != nil {
		b.BeforeNightPickup = *u.BeforeNightPickup
	}
	if u.PickupTime != nil {
		b.PickupTime = *u.PickupTime
	}
	if u.TotalAmount != nil {
		b.TotalAmount = *u.TotalAmount
	}
	if u.Advance != nil {
		b.Advance = *u.Advance
	}
	if u.RecommendedBy != nil {
		b.RecommendedBy = *u.RecommendedBy
	}
	b.Derive()
}

// IsEmpty reports whether the update sets no field at all.
func (u *BookingUpdate) IsEmpty() bool {
	return u.BookingDate == nil && u.NumberOfDays == nil && u.PartyName == nil &&
		u.PartyPhone == nil && u.From == nil && u.Via == nil && u.To == nil &&
		u.BeforeNightPickup == nil && u.PickupTime == nil && u.TotalAmount == nil &&
		u.Advance == nil && u.RecommendedBy == nil
}

// BookingLock is the per-bus advisory lock document held while a write
// checks for conflicts.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
