package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "srimurugan/internal/bookings/errors"
	"srimurugan/internal/bookings/events"
	"srimurugan/internal/bookings/repository"
	"srimurugan/internal/bookings/validator"
	"srimurugan/pkg/availability"
	"srimurugan/pkg/calendar"
	"srimurugan/pkg/clock"
	"srimurugan/pkg/config"
	apperrors "srimurugan/pkg/errors"
	"srimurugan/pkg/model"
	"srimurugan/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByBus(ctx context.Context, busName string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, busName string, start calendar.Date, days int, excludeID string) (*Availability, error)
}

// Availability answers whether a bus is free for [Start, End].
type Availability struct {
	BusName   string                  `json:"bus_name"`
	Start     calendar.Date           `json:"start"`
	End       calendar.Date           `json:"end"`
	Days      int                     `json:"days"`
	Available bool                    `json:"available"`
	Conflicts []availability.Conflict `json:"conflicts"`
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	clock     clock.Clock
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.rejectPastStart(booking.BookingDate); err != nil {
		return err
	}

	release, err := s.acquireBusLock(ctx, booking.BusName)
	if err != nil {
		return err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, booking, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"bus_name", booking.BusName,
			"booking_date", booking.BookingDate,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"bus_name", booking.BusName,
		"booking_date", booking.BookingDate,
		"number_of_days", booking.NumberOfDays,
	)
	s.publish(ctx, events.BookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id, "Failed to retrieve booking")
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// ListByBus returns every booking of the bus in list order.
func (s *bookingService) ListByBus(ctx context.Context, busName string) ([]*model.Booking, error) {
	bus, err := s.resolveBus(busName)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByBus(ctx, bus.Name)
	if err != nil {
		s.cfg.Log.Error("Failed to list bus bookings", "bus_name", bus.Name, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if updates == nil || updates.IsEmpty() {
		return nil, apperrors.InvalidInput("Update must set at least one field")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validationError("Invalid update input", err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id, "Failed to check booking existence")
	}

	merged := *existing
	updates.Apply(&merged)
	s.sanitize(&merged)
	if err := s.validate(&merged); err != nil {
		return nil, err
	}
	if !merged.BookingDate.Equal(existing.BookingDate) {
		if err := s.rejectPastStart(merged.BookingDate); err != nil {
			return nil, err
		}
	}

	release, err := s.acquireBusLock(ctx, merged.BusName)
	if err != nil {
		return nil, err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyAvailability(sessCtx, &merged, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, &merged); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"bus_name", merged.BusName,
		"booking_date", merged.BookingDate,
	)
	s.publish(ctx, events.BookingUpdated, &merged)
	return &merged, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id, "Failed to check booking existence")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapLookupError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id, "bus_name", existing.BusName)
	s.publish(ctx, events.BookingCancelled, existing)
	return nil
}

// CheckAvailability runs the conflict check without writing anything.
func (s *bookingService) CheckAvailability(ctx context.Context, busName string, start calendar.Date, days int, excludeID string) (*Availability, error) {
	bus, err := s.resolveBus(busName)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, apperrors.InvalidInput("start date is required")
	}
	if days < 1 || (s.cfg.MaxBookingDays > 0 && days > s.cfg.MaxBookingDays) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("days must be between 1 and %d", s.cfg.MaxBookingDays))
	}

	existing, err := s.repo.FindByBus(ctx, bus.Name)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bus bookings", err)
	}
	conflicts, err := findConflicts(existing, start, days, excludeID)
	if err != nil {
		return nil, err
	}

	return &Availability{
		BusName:   bus.Name,
		Start:     start,
		End:       start.AddDays(days - 1),
		Days:      days,
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	b.ID = ""
	if b.NumberOfDays == 0 {
		b.NumberOfDays = 1
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.BusName = sanitizer.NormalizeBusName(b.BusName)
	if bus, ok := s.cfg.Fleet.Find(b.BusName); ok {
		b.BusName = bus.Name
	}
	b.PartyName = sanitizer.NormalizeText(b.PartyName)
	b.PartyPhone = sanitizer.NormalizePhone(b.PartyPhone)
	b.From = sanitizer.NormalizeText(b.From)
	b.Via = sanitizer.NormalizeText(b.Via)
	b.To = sanitizer.NormalizeText(b.To)
	b.PickupTime = sanitizer.NormalizePickupTime(b.PickupTime)
	b.RecommendedBy = sanitizer.NormalizeText(b.RecommendedBy)
	b.TotalAmount = sanitizer.NormalizeAmount(b.TotalAmount)
	b.Advance = sanitizer.NormalizeAmount(b.Advance)
	b.Derive()
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "bus_name", booking.BusName, "error", err)
		return validationError("Booking validation failed", err)
	}
	return nil
}

func validationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}

func (s *bookingService) rejectPastStart(start calendar.Date) error {
	if availability.IsPastDate(start.Time(s.clock.Location()), s.clock.Now()) {
		return apperrors.Wrap(bookingserrors.ErrPastDate, apperrors.CodeValidation,
			"Booking date cannot be in the past", http.StatusUnprocessableEntity).
			WithDetails(map[string]any{"booking_date": start.String(), "today": s.clock.Today().String()})
	}
	return nil
}

func (s *bookingService) resolveBus(name string) (model.Bus, error) {
	bus, ok := s.cfg.Fleet.Find(name)
	if !ok {
		return model.Bus{}, apperrors.NotFoundWithID("Bus", name)
	}
	return bus, nil
}

func (s *bookingService) mapLookupError(err error, id, message string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal(message, err)
}

// verifyAvailability loads a fresh snapshot of the bus inside the transaction
// and rejects the write if any day of the booking is taken.
func (s *bookingService) verifyAvailability(ctx context.Context, booking *model.Booking, excludeID string) error {
	existing, err := s.repo.FindByBus(ctx, booking.BusName)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	conflicts, err := findConflicts(existing, booking.BookingDate, booking.NumberOfDays, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		return nil
	}

	dates := make([]string, 0, len(conflicts))
	ids := make([]string, 0, len(conflicts))
	seen := make(map[string]bool)
	for _, c := range conflicts {
		dates = append(dates, c.Date.String())
		if !seen[c.Booking.ID] {
			seen[c.Booking.ID] = true
			ids = append(ids, c.Booking.ID)
		}
	}

	return apperrors.DateConflict(bookingserrors.ErrDateConflict, booking.BusName, dates, ids)
}

func findConflicts(existing []*model.Booking, start calendar.Date, days int, excludeID string) ([]availability.Conflict, error) {
	snapshot, err := availability.NewSnapshot(model.Bookings(existing).Intervals())
	if err != nil {
		return nil, apperrors.Internal("Stored bookings are malformed", err)
	}

	conflicts, err := snapshot.FindConflicts(start, days, excludeID)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	return conflicts, nil
}

// acquireBusLock returns a release func that must be deferred.
func (s *bookingService) acquireBusLock(ctx context.Context, busName string) (func(), error) {
	owner := uuid.NewString()

	_, err := s.lockRepo.Acquire(ctx, busName, owner, s.cfg.BookingLockTTL)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLocked) {
			return nil, apperrors.Wrap(err, apperrors.CodeConflict,
				"This bus is currently being booked by another request. Please try again.",
				http.StatusConflict)
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return func() {
		if err := s.lockRepo.Release(context.WithoutCancel(ctx), busName, owner); err != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "bus_name", busName, "owner", owner, "error", err)
		}
	}, nil
}

// publish happens after commit; a failed publish is logged, not returned.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}
