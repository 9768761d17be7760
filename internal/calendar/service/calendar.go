package service

import (
	"context"
	"fmt"
	"time"

	"srimurugan/pkg/availability"
	"srimurugan/pkg/calendar"
	"srimurugan/pkg/clock"
	apperrors "srimurugan/pkg/errors"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/model"
	"srimurugan/pkg/solar"
)

const (
	StatusPast      = "past"
	StatusBooked    = "booked"
	StatusAvailable = "available"

	minYear = 1900
	maxYear = 2100
)

var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// BookingFinder is the slice of the bookings repository the calendar reads.
type BookingFinder interface {
	FindByBusInRange(ctx context.Context, busName string, from, to calendar.Date) ([]*model.Booking, error)
}

type BookingSummary struct {
	ID           string `json:"id"`
	To           string `json:"to"`
	PartyName    string `json:"party_name,omitempty"`
	NumberOfDays int    `json:"number_of_days"`
	DaysLabel    string `json:"days_label,omitempty"`
}

// Cell is one square of the month grid. Cells outside the month only carry
// the date and its solar month and day.
type Cell struct {
	Date         calendar.Date   `json:"date"`
	Day          int             `json:"day"`
	CurrentMonth bool            `json:"current_month"`
	SolarMonth   string          `json:"solar_month"`
	SolarDay     int             `json:"solar_day"`
	Solar        *solar.Info     `json:"solar,omitempty"`
	Status       string          `json:"status,omitempty"`
	Today        bool            `json:"today,omitempty"`
	NightPickup  bool            `json:"night_pickup,omitempty"`
	PickupTime   string          `json:"pickup_time,omitempty"`
	Booking      *BookingSummary `json:"booking,omitempty"`
}

type MonthView struct {
	Bus            model.Bus `json:"bus"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Title          string    `json:"title"`
	SolarTitle     string    `json:"solar_title"`
	TamilTitle     string    `json:"tamil_title"`
	WeekdayHeaders []string  `json:"weekday_headers"`
	Weeks          [][]Cell  `json:"weeks"`
}

// DayView is what selecting a date resolves to.
type DayView struct {
	Bus         model.Bus      `json:"bus"`
	Date        calendar.Date  `json:"date"`
	Solar       solar.Info     `json:"solar"`
	Status      string         `json:"status"`
	Bookable    bool           `json:"bookable"`
	FormLabel   string         `json:"form_label,omitempty"`
	Booking     *model.Booking `json:"booking,omitempty"`
	NightPickup bool           `json:"night_pickup,omitempty"`
	PickupTime  string         `json:"pickup_time,omitempty"`
}

type CalendarService interface {
	MonthView(ctx context.Context, busName string, year int, month time.Month) (*MonthView, error)
	Day(ctx context.Context, busName string, date calendar.Date) (*DayView, error)
	Solar(date calendar.Date) solar.Info
	Today() calendar.Date
}

type calendarService struct {
	bookings BookingFinder
	fleet    model.Fleet
	clock    clock.Clock
	log      *logger.Logger
}

func NewCalendarService(bookings BookingFinder, fleet model.Fleet, clk clock.Clock, log *logger.Logger) CalendarService {
	return &calendarService{
		bookings: bookings,
		fleet:    fleet,
		clock:    clk,
		log:      log,
	}
}

func (s *calendarService) Today() calendar.Date {
	return s.clock.Today()
}

func (s *calendarService) Solar(date calendar.Date) solar.Info {
	return solar.Convert(date)
}

func (s *calendarService) MonthView(ctx context.Context, busName string, year int, month time.Month) (*MonthView, error) {
	bus, ok := s.fleet.Find(busName)
	if !ok {
		return nil, apperrors.NotFoundWithID("Bus", busName)
	}
	if month < time.January || month > time.December {
		return nil, apperrors.InvalidInput(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}
	if year < minYear || year > maxYear {
		return nil, apperrors.InvalidInput(fmt.Sprintf("year must be between %d and %d, got %d", minYear, maxYear, year))
	}

	first := calendar.Date{Year: year, Month: month, Day: 1}
	daysInMonth := calendar.DaysIn(year, month)
	leading := int(first.Weekday())
	totalCells := (leading + daysInMonth + 6) / 7 * 7
	gridStart := first.AddDays(-leading)
	gridEnd := gridStart.AddDays(totalCells - 1)

	// One extra day so a night pickup spilling onto the last cell is seen.
	snapshot, err := s.snapshot(ctx, bus.Name, gridStart, gridEnd.AddDays(1))
	if err != nil {
		return nil, err
	}
	records := snapshot.records

	today := s.clock.Today()
	cells := make([]Cell, 0, totalCells)
	for i := 0; i < totalCells; i++ {
		d := gridStart.AddDays(i)
		info := solar.Convert(d)
		cell := Cell{
			Date:       d,
			Day:        d.Day,
			SolarMonth: info.MonthName,
			SolarDay:   info.DayNumber,
		}
		if d.Month == month {
			cell.CurrentMonth = true
			cell.Solar = &info
			cell.Today = d.Equal(today)
			cell.Status = status(snapshot.Snapshot, d, today)
			if iv, ok := snapshot.NightPickupFor(d); ok {
				cell.NightPickup = true
				cell.PickupTime = iv.PickupTime
			}
			if iv, ok := snapshot.StartingOn(d); ok {
				cell.Booking = summarize(records[iv.ID])
			}
		}
		cells = append(cells, cell)
	}

	weeks := make([][]Cell, 0, totalCells/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	title := solar.MonthTitle(year, month)
	return &MonthView{
		Bus:            bus,
		Year:           year,
		Month:          int(month),
		Title:          fmt.Sprintf("%s %d", month, year),
		SolarTitle:     title.Label,
		TamilTitle:     title.TamilLabel,
		WeekdayHeaders: WeekdayHeaders,
		Weeks:          weeks,
	}, nil
}

func (s *calendarService) Day(ctx context.Context, busName string, date calendar.Date) (*DayView, error) {
	bus, ok := s.fleet.Find(busName)
	if !ok {
		return nil, apperrors.NotFoundWithID("Bus", busName)
	}
	if date.IsZero() {
		return nil, apperrors.InvalidInput("date is required")
	}

	snapshot, err := s.snapshot(ctx, bus.Name, date, date.AddDays(1))
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	view := &DayView{
		Bus:    bus,
		Date:   date,
		Solar:  solar.Convert(date),
		Status: status(snapshot.Snapshot, date, today),
	}
	iv, ok, err := snapshot.Lookup(date)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if ok {
		view.Booking = snapshot.records[iv.ID]
	}
	if pickup, ok := snapshot.NightPickupFor(date); ok {
		view.NightPickup = true
		view.PickupTime = pickup.PickupTime
	}
	if view.Status == StatusAvailable {
		view.Bookable = true
		view.FormLabel = view.Solar.Label
	}
	return view, nil
}

type busSnapshot struct {
	*availability.Snapshot
	records map[string]*model.Booking
}

func (s *calendarService) snapshot(ctx context.Context, busName string, from, to calendar.Date) (*busSnapshot, error) {
	bookings, err := s.bookings.FindByBusInRange(ctx, busName, from, to)
	if err != nil {
		s.log.Error("Failed to load bookings for calendar",
			"bus_name", busName,
			"from", from,
			"to", to,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	snap, err := availability.NewSnapshot(model.Bookings(bookings).Intervals())
	if err != nil {
		return nil, apperrors.Internal("Stored bookings are malformed", err)
	}
	return &busSnapshot{Snapshot: snap, records: model.Bookings(bookings).ByID()}, nil
}

// status gives past precedence over booked, as the calendar greys out
// every day before today.
func status(snap *availability.Snapshot, d, today calendar.Date) string {
	switch {
	case d.Before(today):
		return StatusPast
	case snap.IsDateOccupied(d):
		return StatusBooked
	default:
		return StatusAvailable
	}
}

func summarize(b *model.Booking) *BookingSummary {
	if b == nil {
		return nil
	}
	summary := &BookingSummary{
		ID:           b.ID,
		To:           b.To,
		PartyName:    b.PartyName,
		NumberOfDays: b.NumberOfDays,
	}
	if b.NumberOfDays > 1 {
		summary.DaysLabel = fmt.Sprintf("%d days", b.NumberOfDays)
	}
	return summary
}
