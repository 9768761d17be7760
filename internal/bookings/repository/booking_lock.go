package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "srimurugan/internal/bookings/errors"
	"srimurugan/pkg/config"
	"srimurugan/pkg/model"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository stores per-bus advisory locks. The TTL index on
// expires_at removes abandoned locks; Acquire also takes over a lock whose
// expiry has passed before the TTL monitor got to it.
type BookingLockRepository interface {
	Acquire(ctx context.Context, busName, owner string, ttl time.Duration) (*model.BookingLock, error)
	Release(ctx context.Context, busName, owner string) error
}

type mongoBookingLockRepository struct {
	collection   *mongo.Collection
	writeTimeout time.Duration
	now          func() time.Time
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return newMongoBookingLockRepository(db.Collection(LockCollectionName), cfg.WriteTimeout)
}

func newMongoBookingLockRepository(coll *mongo.Collection, writeTimeout time.Duration) *mongoBookingLockRepository {
	return &mongoBookingLockRepository{
		collection:   coll,
		writeTimeout: writeTimeout,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func lockID(busName string) string {
	return "bus_lock_" + busName
}

// Acquire returns ErrLocked when another owner holds a live lock on the bus.
func (r *mongoBookingLockRepository) Acquire(ctx context.Context, busName, owner string, ttl time.Duration) (*model.BookingLock, error) {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	now := r.now()
	lock := &model.BookingLock{
		ID:        lockID(busName),
		Owner:     owner,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return lock, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", busName, err)
	}

	filter := bson.M{"_id": lock.ID, "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{
		"owner":      owner,
		"expires_at": lock.ExpiresAt,
		"created_at": now,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to take over expired lock for %s: %w", busName, err)
	}
	if result.ModifiedCount == 0 {
		return nil, bookingserrors.ErrLocked
	}
	return lock, nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, busName, owner string) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID(busName), "owner": owner})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to release lock for %s: %w", busName, err)
	}
	return nil
}
