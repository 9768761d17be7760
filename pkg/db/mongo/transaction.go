// Package mongo runs multi-document work in a Mongo transaction.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	apperrors "srimurugan/pkg/errors"
)

// TransactionFunc must use sessCtx for every operation that belongs to the
// transaction.
type TransactionFunc func(sessCtx mongo.SessionContext) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
	opts   *options.TransactionOptions
}

// NewTransactionManager uses snapshot reads and majority writes, so the
// availability check inside a booking transaction sees every committed
// booking. maxCommit bounds the commit; zero leaves the server default.
func NewTransactionManager(client *mongo.Client, maxCommit time.Duration) TransactionManager {
	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	if maxCommit > 0 {
		opts.SetMaxCommitTime(&maxCommit)
	}
	return &mongoTransactionManager{client: client, opts: opts}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	}, m.opts)
	if err == nil {
		return nil
	}
	// Domain errors raised by fn reach the service untouched.
	if apperrors.IsAppError(err) {
		return err
	}
	return fmt.Errorf("booking transaction aborted: %w", err)
}
