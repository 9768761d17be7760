package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"srimurugan/pkg/calendar"
	"srimurugan/pkg/model"
)

// bookingDocument is the stored shape of a booking. Dates are kept as UTC
// midnight so range queries work on native Mongo dates.
type bookingDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	BusName           string             `bson:"bus_name"`
	BookingDate       time.Time          `bson:"booking_date"`
	EndDate           time.Time          `bson:"end_date"`
	NumberOfDays      int                `bson:"number_of_days"`
	PartyName         string             `bson:"party_name"`
	PartyPhone        string             `bson:"party_phone"`
	From              string             `bson:"from"`
	Via               string             `bson:"via"`
	To                string             `bson:"to"`
	BeforeNightPickup bool               `bson:"before_night_pickup"`
	PickupTime        string             `bson:"pickup_time,omitempty"`
	TotalAmount       float64            `bson:"total_amount"`
	Advance           float64            `bson:"advance"`
	Balance           float64            `bson:"balance"`
	RecommendedBy     string             `bson:"recommended_by"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func dateToStore(d calendar.Date) time.Time {
	return d.Time(time.UTC)
}

func dateFromStore(t time.Time) calendar.Date {
	return calendar.FromTime(t.UTC())
}

func toDocument(b *model.Booking) bookingDocument {
	doc := bookingDocument{
		BusName:           b.BusName,
		BookingDate:       dateToStore(b.BookingDate),
		EndDate:           dateToStore(b.EndDate),
		NumberOfDays:      b.NumberOfDays,
		PartyName:         b.PartyName,
		PartyPhone:        b.PartyPhone,
		From:              b.From,
		Via:               b.Via,
		To:                b.To,
		BeforeNightPickup: b.BeforeNightPickup,
		PickupTime:        b.PickupTime,
		TotalAmount:       b.TotalAmount,
		Advance:           b.Advance,
		Balance:           b.Balance,
		RecommendedBy:     b.RecommendedBy,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(b.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d bookingDocument) toModel() *model.Booking {
	return &model.Booking{
		ID:                d.ID.Hex(),
		BusName:           d.BusName,
		BookingDate:       dateFromStore(d.BookingDate),
		EndDate:           dateFromStore(d.EndDate),
		NumberOfDays:      d.NumberOfDays,
		PartyName:         d.PartyName,
		PartyPhone:        d.PartyPhone,
		From:              d.From,
		Via:               d.Via,
		To:                d.To,
		BeforeNightPickup: d.BeforeNightPickup,
		PickupTime:        d.PickupTime,
		TotalAmount:       d.TotalAmount,
		Advance:           d.Advance,
		Balance:           d.Balance,
		RecommendedBy:     d.RecommendedBy,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func toModels(docs []bookingDocument) []*model.Booking {
	out := make([]*model.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out
}
