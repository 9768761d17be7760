package service

import (
	"context"
	"sort"
	"sync"

	"srimurugan/pkg/calendar"
	"srimurugan/pkg/clock"
	apperrors "srimurugan/pkg/errors"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/model"
)

// BookingLister is satisfied by the bookings service.
type BookingLister interface {
	ListByBus(ctx context.Context, busName string) ([]*model.Booking, error)
}

type Totals struct {
	TotalBookings      int     `json:"total_bookings"`
	TotalDays          int     `json:"total_days"`
	TotalRevenue       float64 `json:"total_revenue"`
	AdvanceCollected   float64 `json:"advance_collected"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

type BusReport struct {
	Bus         model.Bus        `json:"bus"`
	GeneratedOn calendar.Date    `json:"generated_on"`
	Totals      Totals           `json:"totals"`
	PastTrips   []*model.Booking `json:"past_trips"`
	Ongoing     []*model.Booking `json:"ongoing_trips"`
	FutureTrips []*model.Booking `json:"future_trips"`
}

type BusSummary struct {
	Bus          model.Bus `json:"bus"`
	Totals       Totals    `json:"totals"`
	PastTrips    int       `json:"past_trips"`
	OngoingTrips int       `json:"ongoing_trips"`
	FutureTrips  int       `json:"future_trips"`
}

type FleetReport struct {
	GeneratedOn calendar.Date `json:"generated_on"`
	Buses       []BusSummary  `json:"buses"`
	Totals      Totals        `json:"totals"`
}

type ReportService interface {
	BusReport(ctx context.Context, busName string) (*BusReport, error)
	FleetReport(ctx context.Context) (*FleetReport, error)
	BusReportPDF(ctx context.Context, busName string) ([]byte, *BusReport, error)
}

type reportService struct {
	bookings BookingLister
	fleet    model.Fleet
	clock    clock.Clock
	log      *logger.Logger
}

func NewReportService(bookings BookingLister, fleet model.Fleet, clk clock.Clock, log *logger.Logger) ReportService {
	return &reportService{
		bookings: bookings,
		fleet:    fleet,
		clock:    clk,
		log:      log,
	}
}

func (s *reportService) BusReport(ctx context.Context, busName string) (*BusReport, error) {
	bus, ok := s.fleet.Find(busName)
	if !ok {
		return nil, apperrors.NotFoundWithID("Bus", busName)
	}

	bookings, err := s.bookings.ListByBus(ctx, bus.Name)
	if err != nil {
		return nil, err
	}

	return buildReport(bus, bookings, s.clock.Today()), nil
}

// FleetReport loads every bus concurrently and keeps fleet order.
func (s *reportService) FleetReport(ctx context.Context) (*FleetReport, error) {
	reports := make([]*BusReport, len(s.fleet))
	errs := make([]error, len(s.fleet))
	var wg sync.WaitGroup

	for i, bus := range s.fleet {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reports[i], errs[i] = s.BusReport(ctx, bus.Name)
			if errs[i] != nil {
				s.log.Error("Failed to build bus report", "bus_name", bus.Name, "error", errs[i])
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	fleet := &FleetReport{
		GeneratedOn: s.clock.Today(),
		Buses:       make([]BusSummary, 0, len(reports)),
	}
	for _, r := range reports {
		fleet.Buses = append(fleet.Buses, BusSummary{
			Bus:          r.Bus,
			Totals:       r.Totals,
			PastTrips:    len(r.PastTrips),
			OngoingTrips: len(r.Ongoing),
			FutureTrips:  len(r.FutureTrips),
		})
		fleet.Totals.add(r.Totals)
	}
	return fleet, nil
}

func (s *reportService) BusReportPDF(ctx context.Context, busName string) ([]byte, *BusReport, error) {
	report, err := s.BusReport(ctx, busName)
	if err != nil {
		return nil, nil, err
	}

	body, err := renderPDF(report)
	if err != nil {
		s.log.Error("Failed to render report PDF", "bus_name", report.Bus.Name, "error", err)
		return nil, nil, apperrors.Internal("Failed to render report", err)
	}
	return body, report, nil
}

func (t *Totals) add(o Totals) {
	t.TotalBookings += o.TotalBookings
	t.TotalDays += o.TotalDays
	t.TotalRevenue += o.TotalRevenue
	t.AdvanceCollected += o.AdvanceCollected
	t.OutstandingBalance += o.OutstandingBalance
}

// buildReport splits trips around today: past ends before today, future
// starts on or after today, and ongoing covers today.
func buildReport(bus model.Bus, bookings []*model.Booking, today calendar.Date) *BusReport {
	report := &BusReport{
		Bus:         bus,
		GeneratedOn: today,
		PastTrips:   []*model.Booking{},
		Ongoing:     []*model.Booking{},
		FutureTrips: []*model.Booking{},
	}

	for _, b := range bookings {
		report.Totals.TotalBookings++
		report.Totals.TotalDays += b.NumberOfDays
		report.Totals.TotalRevenue += b.TotalAmount
		report.Totals.AdvanceCollected += b.Advance
		report.Totals.OutstandingBalance += b.Balance

		end := b.BookingDate.AddDays(b.NumberOfDays - 1)
		switch {
		case end.Before(today):
			report.PastTrips = append(report.PastTrips, b)
		case !b.BookingDate.Before(today):
			report.FutureTrips = append(report.FutureTrips, b)
		default:
			report.Ongoing = append(report.Ongoing, b)
		}
	}

	sort.SliceStable(report.PastTrips, func(i, j int) bool {
		return report.PastTrips[i].BookingDate.After(report.PastTrips[j].BookingDate)
	})
	sort.SliceStable(report.Ongoing, func(i, j int) bool {
		return report.Ongoing[i].BookingDate.Before(report.Ongoing[j].BookingDate)
	})
	sort.SliceStable(report.FutureTrips, func(i, j int) bool {
		return report.FutureTrips[i].BookingDate.Before(report.FutureTrips[j].BookingDate)
	})
	return report
}
