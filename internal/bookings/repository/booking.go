package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "srimurugan/internal/bookings/errors"
	"srimurugan/pkg/calendar"
	"srimurugan/pkg/config"
	mongotx "srimurugan/pkg/db/mongo"
	"srimurugan/pkg/model"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context) (int64, error)
	FindByBus(ctx context.Context, busName string) ([]*model.Booking, error)
	FindByBusInRange(ctx context.Context, busName string, from, to calendar.Date) ([]*model.Booking, error)
	Update(ctx context.Context, id string, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	collection   *mongo.Collection
	txManager    mongotx.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
	now          func() time.Time
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return newMongoBookingRepository(
		db.Collection(CollectionName),
		mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.WriteTimeout),
		cfg.ReadTimeout,
		cfg.WriteTimeout,
	)
}

func newMongoBookingRepository(coll *mongo.Collection, tx mongotx.TransactionManager, readTimeout, writeTimeout time.Duration) *mongoBookingRepository {
	return &mongoBookingRepository{
		collection:   coll,
		txManager:    tx,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// withTimeout bounds ctx unless it is a SessionContext, which cannot be
// wrapped without leaving the transaction.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	if remaining := time.Until(deadline); remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// listOrder is booking_date then insertion; conflicts and calendar cells
// resolve against the first booking in this order.
var listOrder = bson.D{{Key: "booking_date", Value: 1}, {Key: "_id", Value: 1}}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	now := r.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	doc := toDocument(booking)
	doc.ID = primitive.NilObjectID
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var doc bookingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return doc.toModel(), nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	opts := options.Find().
		SetSort(listOrder).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoBookingRepository) FindByBus(ctx context.Context, busName string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"bus_name": busName}, options.Find().SetSort(listOrder))
}

// FindByBusInRange returns the bus's bookings whose [booking_date, end_date]
// overlaps [from, to].
func (r *mongoBookingRepository) FindByBusInRange(ctx context.Context, busName string, from, to calendar.Date) ([]*model.Booking, error) {
	filter := bson.M{
		"bus_name":     busName,
		"booking_date": bson.M{"$lte": dateToStore(to)},
		"end_date":     bson.M{"$gte": dateToStore(from)},
	}
	return r.find(ctx, filter, options.Find().SetSort(listOrder))
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return toModels(docs), nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.readTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *mongoBookingRepository) Update(ctx context.Context, id string, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	booking.UpdatedAt = r.now()
	doc := toDocument(booking)
	update := bson.M{
		"$set": bson.M{
			"bus_name":            doc.BusName,
			"booking_date":        doc.BookingDate,
			"end_date":            doc.EndDate,
			"number_of_days":      doc.NumberOfDays,
			"party_name":          doc.PartyName,
			"party_phone":         doc.PartyPhone,
			"from":                doc.From,
			"via":                 doc.Via,
			"to":                  doc.To,
			"before_night_pickup": doc.BeforeNightPickup,
			"pickup_time":         doc.PickupTime,
			"total_amount":        doc.TotalAmount,
			"advance":             doc.Advance,
			"balance":             doc.Balance,
			"recommended_by":      doc.RecommendedBy,
			"updated_at":          doc.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
